package livesync

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
)

func newPropertyFixture() (*fakeSource, *fakeMutator, *realtime.Hub, *PropertyStore) {
	src := newFakeSource()
	mut := newFakeMutator(src)
	hub := realtime.NewHub()
	store := NewPropertyStore(src, mut, hub, PropertyFilter{})
	return src, mut, hub, store
}

func publishRow(t *testing.T, hub *realtime.Hub, kind realtime.EventKind, table string, row interface{}) {
	t.Helper()
	var ev realtime.ChangeEvent
	var err error
	if kind == realtime.EventDelete {
		ev, err = realtime.NewChangeEvent(kind, table, nil, row)
	} else {
		ev, err = realtime.NewChangeEvent(kind, table, row, nil)
	}
	assert.Equal(t, nil, err)
	hub.Publish(ev)
}

func TestPropertyStoreLoad(t *testing.T) {
	src, _, _, store := newPropertyFixture()
	src.properties = []model.Property{
		{Model: gormModel(1), Title: "Casa Uno"},
		{Model: gormModel(2), Title: "Casa Dos"},
	}

	err := store.Load(context.Background())
	assert.Equal(t, nil, err)

	snap := store.Snapshot()
	assert.Equal(t, 2, len(snap))
	assert.Equal(t, "Casa Uno", snap[0].Title)
}

func TestPropertyStoreStateMachine(t *testing.T) {
	_, _, _, store := newPropertyFixture()

	assert.Equal(t, StateClosed, store.State())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := store.Start(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, StateSubscribed, store.State())

	// İkinci Start reddedilir
	assert.Equal(t, ErrAlreadyStarted, store.Start(ctx))

	store.Stop()
	assert.Equal(t, StateClosed, store.State())

	// Stop sonrası tekrar başlatılabilir
	err = store.Start(ctx)
	assert.Equal(t, nil, err)
	store.Stop()
}

func TestPropertyStoreInsertEventRefetchesChildren(t *testing.T) {
	src, _, hub, store := newPropertyFixture()

	err := store.Load(context.Background())
	assert.Equal(t, nil, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, nil, store.Start(ctx))
	defer store.Stop()

	// Olay payload'ı yalnızca parent satırı taşır; child'lar source'tan gelir
	row := model.Property{Model: gormModel(5), Title: "Casa Nueva"}
	src.setProperty(row)
	src.mu.Lock()
	src.images[5] = []model.PropertyImage{
		{Model: gormModel(50), PropertyID: 5, URL: "nueva.jpg", IsPrimary: true},
	}
	src.mu.Unlock()

	publishRow(t, hub, realtime.EventInsert, realtime.TableProperties, row)

	waitFor(t, func() bool {
		snap := store.Snapshot()
		return len(snap) == 1 && snap[0].PrimaryImage == "nueva.jpg"
	})
}

func TestPropertyStoreDeleteEvent(t *testing.T) {
	src, _, hub, store := newPropertyFixture()
	src.properties = []model.Property{{Model: gormModel(1), Title: "Casa"}}

	assert.Equal(t, nil, store.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, nil, store.Start(ctx))
	defer store.Stop()

	publishRow(t, hub, realtime.EventDelete, realtime.TableProperties,
		model.Property{Model: gormModel(1)})

	waitFor(t, func() bool {
		return len(store.Snapshot()) == 0
	})

	// Olmayan id'nin silinmesi no-op
	publishRow(t, hub, realtime.EventDelete, realtime.TableProperties,
		model.Property{Model: gormModel(42)})
	assert.Equal(t, 0, len(store.Snapshot()))
}

// Optimistic create + akış echo'su aynı id için tek kayda yakınsar; alanlar
// sunucunun döndürdüğü temsilden gelir.
func TestPropertyStoreCreateThenEchoConverges(t *testing.T) {
	src, _, hub, store := newPropertyFixture()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, nil, store.Start(ctx))
	defer store.Stop()

	created, err := store.Create(ctx, PropertyWrite{
		Title:  "Casa del Sol",
		Price:  250000,
		Status: model.PropertyStatusAvailable,
	})
	assert.Equal(t, nil, err)

	// Optimistic patch hemen görünür
	snap := store.Snapshot()
	assert.Equal(t, 1, len(snap))
	assert.Equal(t, created.ID, snap[0].ID)

	// Aynı insert'in akış echo'su ikinci kez uygulanır; Upsert yerinde
	// değiştirdiği için liste tek kayıtta kalır.
	row, err := src.PropertyByID(ctx, created.ID)
	assert.Equal(t, nil, err)
	publishRow(t, hub, realtime.EventInsert, realtime.TableProperties, row)

	waitFor(t, func() bool {
		snap := store.Snapshot()
		return len(snap) == 1 &&
			snap[0].ID == created.ID &&
			snap[0].Title == "Casa del Sol" &&
			snap[0].Price == 250000
	})
}

// Yazma hatasında optimistic patch uygulanmaz ve hata çağırana döner.
func TestPropertyStoreFailedWriteLeavesStateUntouched(t *testing.T) {
	src, mut, _, store := newPropertyFixture()
	src.properties = []model.Property{{Model: gormModel(1), Title: "Casa"}}
	assert.Equal(t, nil, store.Load(context.Background()))

	mut.err = errors.New("write rejected")

	_, err := store.Create(context.Background(), PropertyWrite{Title: "Nope"})
	assert.NotEqual(t, nil, err)

	_, err = store.Update(context.Background(), 1, PropertyWrite{Title: "Nope"})
	assert.NotEqual(t, nil, err)

	err = store.Delete(context.Background(), 1)
	assert.NotEqual(t, nil, err)

	snap := store.Snapshot()
	assert.Equal(t, 1, len(snap))
	assert.Equal(t, "Casa", snap[0].Title)
}

func TestPropertyStoreUpdateReplacesLocal(t *testing.T) {
	src, _, _, store := newPropertyFixture()
	src.properties = []model.Property{{Model: gormModel(1), Title: "Casa Vieja"}}
	assert.Equal(t, nil, store.Load(context.Background()))

	updated, err := store.Update(context.Background(), 1, PropertyWrite{
		Title:  "Casa Renovada",
		Status: model.PropertyStatusReserved,
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, "Casa Renovada", updated.Title)

	snap := store.Snapshot()
	assert.Equal(t, 1, len(snap))
	assert.Equal(t, "Casa Renovada", snap[0].Title)
	assert.Equal(t, "reserved", snap[0].Status)
}

func TestPropertyStoreDeleteFacade(t *testing.T) {
	src, _, _, store := newPropertyFixture()
	src.properties = []model.Property{{Model: gormModel(1), Title: "Casa"}}
	assert.Equal(t, nil, store.Load(context.Background()))

	assert.Equal(t, nil, store.Delete(context.Background(), 1))
	assert.Equal(t, 0, len(store.Snapshot()))
}

// Stop'tan sonra tamamlanan re-fetch sonuçları uygulanmaz: uçuştaki lookup
// gate ile bekletilir, Stop epoch'u ilerletir, lookup serbest bırakıldığında
// sonuç düşer.
func TestPropertyStoreStopDropsLateRefetch(t *testing.T) {
	src, _, hub, store := newPropertyFixture()

	gate := make(chan struct{})
	src.gate = gate
	src.setProperty(model.Property{Model: gormModel(8), Title: "Casa Tardía"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, nil, store.Start(ctx))

	publishRow(t, hub, realtime.EventInsert, realtime.TableProperties,
		model.Property{Model: gormModel(8)})

	// Re-fetch gate'te beklemeye düşene kadar bekle
	waitFor(t, func() bool { return src.pointLookups() >= 1 })

	done := make(chan struct{})
	go func() {
		store.Stop()
		close(done)
	}()

	// Stop önce epoch'u ilerletip state'i kapatır, sonra re-fetch'i bekler
	waitFor(t, func() bool { return store.State() == StateClosed })
	close(gate)
	<-done

	assert.Equal(t, 0, len(store.Snapshot()))
}

func TestLeadStoreEchoInsert(t *testing.T) {
	src := newFakeSource()
	mut := newFakeMutator(src)
	hub := realtime.NewHub()
	store := NewLeadStore(src, mut, hub, LeadFilter{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, nil, store.Start(ctx))
	defer store.Stop()

	lead := model.Lead{Model: gormModel(9), FirstName: "Rosa", Status: model.LeadStatusNew}
	src.setLead(lead)

	publishRow(t, hub, realtime.EventInsert, realtime.TableLeads, lead)

	waitFor(t, func() bool {
		snap := store.Snapshot()
		return len(snap) == 1 && snap[0].Name == "Rosa"
	})
}

// UpdateStatus write-map üzerinden yazar: confirmed backend'e contacted
// olarak gider ve okuma eşlemesiyle pending olarak görünür. Asimetri store
// seviyesinde de korunur.
func TestLeadStoreUpdateStatusWritesThroughWriteMap(t *testing.T) {
	src := newFakeSource()
	mut := newFakeMutator(src)
	hub := realtime.NewHub()
	store := NewLeadStore(src, mut, hub, LeadFilter{})

	src.setLead(model.Lead{Model: gormModel(3), FirstName: "Iker", Status: model.LeadStatusInterested})
	assert.Equal(t, nil, store.Load(context.Background()))
	assert.Equal(t, LeadViewConfirmed, store.Snapshot()[0].Status)

	view, err := store.UpdateStatus(context.Background(), 3, LeadViewConfirmed)
	assert.Equal(t, nil, err)

	// Backend'e contacted yazıldı, o da panelde pending okunur
	row, err := src.LeadByID(context.Background(), 3)
	assert.Equal(t, nil, err)
	assert.Equal(t, model.LeadStatusContacted, row.Status)
	assert.Equal(t, LeadViewPending, view.Status)
}
