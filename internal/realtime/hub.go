package realtime

import (
	"context"
	"log/slog"
	"sync"
)

const subscriptionBuffer = 64

// Hub tablo başına değişiklik olaylarını abonelere dağıtır. Yazma yapan
// controller'lar commit sonrası Publish çağırır; her abone kendi buffered
// kanalından okur. Yavaş kalan abonenin olayı düşürülür, publish asla bloklamaz.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

type Subscription struct {
	hub   *Hub
	table string
	C     chan ChangeEvent

	closeOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe verilen tablo için yeni bir abonelik açar.
func (h *Hub) Subscribe(table string) *Subscription {
	sub := &Subscription{
		hub:   h,
		table: table,
		C:     make(chan ChangeEvent, subscriptionBuffer),
	}

	h.mu.Lock()
	if h.subs[table] == nil {
		h.subs[table] = make(map[*Subscription]struct{})
	}
	h.subs[table][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish olayı tablonun tüm abonelerine iletir.
func (h *Hub) Publish(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[ev.Table] {
		select {
		case sub.C <- ev:
		default:
			slog.Warn("realtime: dropping event for slow subscriber",
				"table", ev.Table, "event", string(ev.Kind))
		}
	}
}

// SubscriberCount test ve tanılama için abone sayısını döner.
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

// Close aboneliği hub'dan düşürür ve kanalını kapatır.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs[s.table], s)
		s.hub.mu.Unlock()
		close(s.C)
	})
}

// Changes hub'ı in-process stream olarak sunar: dönen kanal context iptalinde
// kapanır. internal/livesync Stream sözleşmesini karşılar.
func (h *Hub) Changes(ctx context.Context, table string) (<-chan ChangeEvent, error) {
	sub := h.Subscribe(table)
	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub.C, nil
}
