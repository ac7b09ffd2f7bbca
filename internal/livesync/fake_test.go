package livesync

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"casavista_backend/internal/model"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

// fakeSource sorgu setini bellekte tutar ve çağrı sayar.
type fakeSource struct {
	mu sync.Mutex

	properties []model.Property
	images     map[uint][]model.PropertyImage
	features   map[uint][]model.PropertyFeature
	types      []model.PropertyType
	leads      []model.Lead

	err error

	// gate doluysa PropertyByID sonucu döndürmeden önce kanalı bekler;
	// uçuştaki re-fetch'i istenen anda serbest bırakmak için kullanılır.
	gate chan struct{}

	parentCalls  int
	imageCalls   int
	featureCalls int
	typeCalls    int
	leadCalls    int
	pointCalls   int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		images:   map[uint][]model.PropertyImage{},
		features: map[uint][]model.PropertyFeature{},
	}
}

func (f *fakeSource) Properties(ctx context.Context, _ PropertyFilter) ([]model.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parentCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Property{}, f.properties...), nil
}

func (f *fakeSource) PropertyByID(ctx context.Context, id uint) (model.Property, error) {
	f.mu.Lock()
	f.pointCalls++
	gate := f.gate

	var row model.Property
	var err error = gorm.ErrRecordNotFound
	if f.err != nil {
		err = f.err
	} else {
		for _, p := range f.properties {
			if p.ID == id {
				row, err = p, nil
				break
			}
		}
	}
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return row, err
}

func (f *fakeSource) ImagesForProperties(ctx context.Context, ids []uint) ([]model.PropertyImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.PropertyImage
	for _, id := range ids {
		out = append(out, f.images[id]...)
	}
	return out, nil
}

func (f *fakeSource) FeaturesForProperties(ctx context.Context, ids []uint) ([]model.PropertyFeature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.featureCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.PropertyFeature
	for _, id := range ids {
		out = append(out, f.features[id]...)
	}
	return out, nil
}

func (f *fakeSource) PropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typeCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.PropertyType{}, f.types...), nil
}

func (f *fakeSource) Leads(ctx context.Context, _ LeadFilter) ([]model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leadCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Lead{}, f.leads...), nil
}

func (f *fakeSource) LeadByID(ctx context.Context, id uint) (model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Lead{}, f.err
	}
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lead{}, gorm.ErrRecordNotFound
}

func (f *fakeSource) setProperty(p model.Property) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.properties {
		if f.properties[i].ID == p.ID {
			f.properties[i] = p
			return
		}
	}
	f.properties = append(f.properties, p)
}

func (f *fakeSource) setLead(l model.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.leads {
		if f.leads[i].ID == l.ID {
			f.leads[i] = l
			return
		}
	}
	f.leads = append(f.leads, l)
}

func (f *fakeSource) calls() (parents, images, features, types int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parentCalls, f.imageCalls, f.featureCalls, f.typeCalls
}

func (f *fakeSource) pointLookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pointCalls
}

// fakeMutator yazmaları sahte satırlara çevirir; err doluysa yazma reddedilir.
type fakeMutator struct {
	mu     sync.Mutex
	nextID uint
	err    error

	source *fakeSource
}

func newFakeMutator(source *fakeSource) *fakeMutator {
	return &fakeMutator{nextID: 100, source: source}
}

func (f *fakeMutator) CreateProperty(ctx context.Context, w PropertyWrite) (model.Property, error) {
	f.mu.Lock()
	if f.err != nil {
		defer f.mu.Unlock()
		return model.Property{}, f.err
	}
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	p := model.Property{
		Model:     gormModel(id),
		Title:     w.Title,
		Price:     w.Price,
		Currency:  w.Currency,
		Status:    w.Status,
		Published: w.Published,
	}
	if f.source != nil {
		f.source.setProperty(p)
	}
	return p, nil
}

func (f *fakeMutator) UpdateProperty(ctx context.Context, id uint, w PropertyWrite) (model.Property, error) {
	f.mu.Lock()
	if f.err != nil {
		defer f.mu.Unlock()
		return model.Property{}, f.err
	}
	f.mu.Unlock()

	p := model.Property{
		Model:     gormModel(id),
		Title:     w.Title,
		Price:     w.Price,
		Currency:  w.Currency,
		Status:    w.Status,
		Published: w.Published,
	}
	if f.source != nil {
		f.source.setProperty(p)
	}
	return p, nil
}

func (f *fakeMutator) DeleteProperty(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeMutator) CreateLead(ctx context.Context, w LeadWrite) (model.Lead, error) {
	f.mu.Lock()
	if f.err != nil {
		defer f.mu.Unlock()
		return model.Lead{}, f.err
	}
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	l := model.Lead{
		Model:     gormModel(id),
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		Phone:     w.Phone,
		Notes:     w.Notes,
		Status:    model.LeadStatusNew,
	}
	if f.source != nil {
		f.source.setLead(l)
	}
	return l, nil
}

func (f *fakeMutator) UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (model.Lead, error) {
	f.mu.Lock()
	if f.err != nil {
		defer f.mu.Unlock()
		return model.Lead{}, f.err
	}
	f.mu.Unlock()

	l := model.Lead{Model: gormModel(id), Status: status}
	if f.source != nil {
		f.source.setLead(l)
	}
	return l, nil
}

func (f *fakeMutator) MarkLeadRead(ctx context.Context, id uint) (model.Lead, error) {
	f.mu.Lock()
	if f.err != nil {
		defer f.mu.Unlock()
		return model.Lead{}, f.err
	}
	f.mu.Unlock()

	l := model.Lead{Model: gormModel(id), ReadStatus: true}
	if f.source != nil {
		f.source.setLead(l)
	}
	return l, nil
}

// waitFor koşul sağlanana kadar bekler, zaman aşımında testi düşürür.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before timeout")
}
