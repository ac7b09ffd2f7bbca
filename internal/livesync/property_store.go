package livesync

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
)

var ErrAlreadyStarted = errors.New("livesync: store already started")

// PropertyStore tek bir görünümün sahip olduğu canlı ilan listesi.
// Load toplu yüklemeyi yapar, Start değişiklik akışına abone olur, façade
// metodları yazma + optimistic patch uygular. Liste store'a özeldir; aynı
// tabloyu izleyen iki store bağımsız kopyalar tutar.
type PropertyStore struct {
	src    Source
	mut    Mutator
	stream Stream
	filter PropertyFilter

	mu    sync.Mutex
	list  []ViewProperty
	types map[uint]model.PropertyType
	state SubscriptionState
	epoch uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPropertyStore(src Source, mut Mutator, stream Stream, filter PropertyFilter) *PropertyStore {
	return &PropertyStore{
		src:    src,
		mut:    mut,
		stream: stream,
		filter: filter,
		list:   []ViewProperty{},
		types:  map[uint]model.PropertyType{},
	}
}

// Load listeyi toplu yükler ve tip lookup önbelleğini tazeler. Hata halinde
// mevcut liste değişmez; kısmi sonuç uygulanmaz.
func (s *PropertyStore) Load(ctx context.Context) error {
	types, err := s.src.PropertyTypes(ctx)
	if err != nil {
		return err
	}

	views, err := FetchProperties(ctx, s.src, s.filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.types = IndexPropertyTypes(types)
	s.list = views
	s.mu.Unlock()

	return nil
}

// Start değişiklik aboneliğini açar ve olay döngüsünü başlatır.
func (s *PropertyStore) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateClosed {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateOpening
	epoch := s.epoch
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)

	ch, err := s.stream.Changes(runCtx, realtime.TableProperties)
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

// Stop aboneliği kapatır. Uçuşta kalan re-fetch'ler epoch kontrolüyle
// sonuçlarını uygulamadan düşer.
func (s *PropertyStore) Stop() {
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

func (s *PropertyStore) State() SubscriptionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot listenin kopyasını döner.
func (s *PropertyStore) Snapshot() []ViewProperty {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ViewProperty, len(s.list))
	copy(out, s.list)
	return out
}

func (s *PropertyStore) run(ctx context.Context, ch <-chan realtime.ChangeEvent, epoch uint64) {
	defer s.wg.Done()

	// Olaylar geliş sırasıyla işlenir; insert/update'in child re-fetch'i
	// kendi goroutine'inde koşar, bu yüzden iki yakın olayın reconcile'ı
	// ters sırada tamamlanabilir. Upsert idempotent olduğu için son durum
	// yakınsar (kabul edilen zayıf tutarlılık).
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

// refetch olay payload'ı yalnızca parent satırı taşıdığı için satırın child
// kayıtlarını tek id'lik point lookup'larla çeker, map'ler ve reconcile eder.
func (s *PropertyStore) refetch(ctx context.Context, id uint, epoch uint64) {
	defer s.wg.Done()

	parent, err := s.src.PropertyByID(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("livesync: property re-fetch failed", "id", id, "err", err)
		}
		return
	}

	var (
		images   []model.PropertyImage
		features []model.PropertyFeature
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.src.ImagesForProperties(gctx, []uint{id})
		return err
	})
	g.Go(func() error {
		var err error
		features, err = s.src.FeaturesForProperties(gctx, []uint{id})
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() == nil {
			slog.Warn("livesync: property children re-fetch failed", "id", id, "err", err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Store bu arada durduruldu; geç kalan sonuç uygulanmaz.
		return
	}
	view := MapProperty(parent, images, features, lookupType(s.types, parent.PropertyTypeID))
	s.list = Upsert(s.list, view)
}

// apply epoch hâlâ güncelse dönüşümü liste üzerinde çalıştırır.
func (s *PropertyStore) apply(epoch uint64, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	fn()
}

func (s *PropertyStore) setState(st SubscriptionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Create yazmayı yapar, başarılıysa dönen satırı optimistic olarak başa
// ekler. Akış aynı insert'in echo'sunu ayrıca teslim eder; Upsert'in
// yerinde-değiştirme kuralı ikinci uygulamayı zararsız kılar. Yazma hatası
// yerel duruma dokunmaz.
func (s *PropertyStore) Create(ctx context.Context, w PropertyWrite) (ViewProperty, error) {
	row, err := s.mut.CreateProperty(ctx, w)
	if err != nil {
		return ViewProperty{}, err
	}

	view := s.mapRow(row)

	s.mu.Lock()
	s.list = Upsert(s.list, view)
	s.mu.Unlock()

	return view, nil
}

// Update yazmayı yapar, sunucunun döndürdüğü temsille yerel kaydı değiştirir.
func (s *PropertyStore) Update(ctx context.Context, id uint, w PropertyWrite) (ViewProperty, error) {
	row, err := s.mut.UpdateProperty(ctx, id, w)
	if err != nil {
		return ViewProperty{}, err
	}

	view := s.mapRow(row)

	s.mu.Lock()
	s.list = Upsert(s.list, view)
	s.mu.Unlock()

	return view, nil
}

// Delete yazmayı yapar, yerel kaydı id ile düşürür.
func (s *PropertyStore) Delete(ctx context.Context, id uint) error {
	if err := s.mut.DeleteProperty(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.list = Remove(s.list, id)
	s.mu.Unlock()

	return nil
}

func (s *PropertyStore) mapRow(row model.Property) ViewProperty {
	ptype := row.PropertyType
	if ptype == nil {
		s.mu.Lock()
		ptype = lookupType(s.types, row.PropertyTypeID)
		s.mu.Unlock()
	}
	return MapProperty(row, row.Images, row.Features, ptype)
}
