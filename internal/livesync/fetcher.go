package livesync

import (
	"context"

	"golang.org/x/sync/errgroup"

	"casavista_backend/internal/model"
)

// FetchProperties iki fazlı toplu yükleme yapar: önce filtreye uyan parent
// satırlar, sonra üç child/lookup sorgusu (resimler, özellikler, tipler)
// tek seferde ve eşzamanlı. Parent seti boşsa child sorgusu hiç yapılmadan
// boş liste döner. Herhangi bir sorgu hatası tüm yüklemeyi iptal eder,
// kısmi sonuç dönmez.
func FetchProperties(ctx context.Context, src Source, f PropertyFilter) ([]ViewProperty, error) {
	parents, err := src.Properties(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return []ViewProperty{}, nil
	}

	ids := make([]uint, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
	}

	var (
		images   []model.PropertyImage
		features []model.PropertyFeature
		types    []model.PropertyType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = src.ImagesForProperties(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		features, err = src.FeaturesForProperties(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = src.PropertyTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	imagesByParent := make(map[uint][]model.PropertyImage)
	for _, img := range images {
		imagesByParent[img.PropertyID] = append(imagesByParent[img.PropertyID], img)
	}

	featuresByParent := make(map[uint][]model.PropertyFeature)
	for _, ft := range features {
		featuresByParent[ft.PropertyID] = append(featuresByParent[ft.PropertyID], ft)
	}

	typesByID := IndexPropertyTypes(types)

	views := make([]ViewProperty, 0, len(parents))
	for _, p := range parents {
		views = append(views, MapProperty(
			p,
			imagesByParent[p.ID],
			featuresByParent[p.ID],
			lookupType(typesByID, p.PropertyTypeID),
		))
	}

	return views, nil
}

// FetchLeads lead listesini yükler ve panel görünümüne çevirir. Lead'lerin
// child tablosu yoktur, tek faz yeterlidir.
func FetchLeads(ctx context.Context, src Source, f LeadFilter) ([]ViewLead, error) {
	leads, err := src.Leads(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]ViewLead, 0, len(leads))
	for _, l := range leads {
		views = append(views, MapLead(l))
	}

	return views, nil
}

// IndexPropertyTypes tip lookup tablosunu id'ye göre haritalar.
func IndexPropertyTypes(types []model.PropertyType) map[uint]model.PropertyType {
	m := make(map[uint]model.PropertyType, len(types))
	for _, t := range types {
		m[t.ID] = t
	}
	return m
}

func lookupType(types map[uint]model.PropertyType, id *uint) *model.PropertyType {
	if id == nil {
		return nil
	}
	if t, ok := types[*id]; ok {
		return &t
	}
	return nil
}
