package livesync

import (
	"context"
	"log/slog"
	"sync"

	"casavista_backend/internal/realtime"
)

// LeadStore canlı lead listesi. PropertyStore ile aynı yaşam döngüsünü izler;
// lead satırlarının child tablosu olmadığı için re-fetch tek point lookup'tır.
type LeadStore struct {
	src    Source
	mut    Mutator
	stream Stream
	filter LeadFilter

	mu    sync.Mutex
	list  []ViewLead
	state SubscriptionState
	epoch uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLeadStore(src Source, mut Mutator, stream Stream, filter LeadFilter) *LeadStore {
	return &LeadStore{
		src:    src,
		mut:    mut,
		stream: stream,
		filter: filter,
		list:   []ViewLead{},
	}
}

func (s *LeadStore) Load(ctx context.Context) error {
	views, err := FetchLeads(ctx, s.src, s.filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.list = views
	s.mu.Unlock()

	return nil
}

func (s *LeadStore) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateClosed {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateOpening
	epoch := s.epoch
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)

	ch, err := s.stream.Changes(runCtx, realtime.TableLeads)
	if err != nil {
		cancel()
		s.setState(StateClosed)
		return err
	}

	s.mu.Lock()
	s.state = StateSubscribed
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(runCtx, ch, epoch)

	return nil
}

func (s *LeadStore) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
	s.state = StateClosed
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *LeadStore) State() SubscriptionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *LeadStore) Snapshot() []ViewLead {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ViewLead, len(s.list))
	copy(out, s.list)
	return out
}

func (s *LeadStore) run(ctx context.Context, ch <-chan realtime.ChangeEvent, epoch uint64) {
	defer s.wg.Done()

	for ev := range ch {
		switch ev.Kind {
		case realtime.EventDelete:
			id, ok := ev.RowID()
			if !ok {
				continue
			}
			s.apply(epoch, func() {
				s.list = Remove(s.list, id)
			})

		case realtime.EventInsert, realtime.EventUpdate:
			id, ok := ev.RowID()
			if !ok {
				continue
			}
			s.wg.Add(1)
			go s.refetch(ctx, id, epoch)
		}
	}

	s.setState(StateClosed)
}

func (s *LeadStore) refetch(ctx context.Context, id uint, epoch uint64) {
	defer s.wg.Done()

	row, err := s.src.LeadByID(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("livesync: lead re-fetch failed", "id", id, "err", err)
		}
		return
	}

	s.apply(epoch, func() {
		s.list = Upsert(s.list, MapLead(row))
	})
}

func (s *LeadStore) apply(epoch uint64, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	fn()
}

func (s *LeadStore) setState(st SubscriptionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Create public formlardan gelen başvuruyu yazar ve optimistic olarak başa
// ekler. Yazma hatası yerel duruma dokunmaz.
func (s *LeadStore) Create(ctx context.Context, w LeadWrite) (ViewLead, error) {
	row, err := s.mut.CreateLead(ctx, w)
	if err != nil {
		return ViewLead{}, err
	}

	view := MapLead(row)

	s.mu.Lock()
	s.list = Upsert(s.list, view)
	s.mu.Unlock()

	return view, nil
}

// UpdateStatus panel sözlüğündeki status'u write-map üzerinden backend
// değerine çevirip yazar, dönen satırla yerel kaydı değiştirir.
func (s *LeadStore) UpdateStatus(ctx context.Context, id uint, viewStatus string) (ViewLead, error) {
	row, err := s.mut.UpdateLeadStatus(ctx, id, LeadStatusFromView(viewStatus))
	if err != nil {
		return ViewLead{}, err
	}

	view := MapLead(row)

	s.mu.Lock()
	s.list = Upsert(s.list, view)
	s.mu.Unlock()

	return view, nil
}

// MarkRead lead'i okunmuş işaretler ve yerel kaydı günceller.
func (s *LeadStore) MarkRead(ctx context.Context, id uint) (ViewLead, error) {
	row, err := s.mut.MarkLeadRead(ctx, id)
	if err != nil {
		return ViewLead{}, err
	}

	view := MapLead(row)

	s.mu.Lock()
	s.list = Upsert(s.list, view)
	s.mu.Unlock()

	return view, nil
}
