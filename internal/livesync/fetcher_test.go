package livesync

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"casavista_backend/internal/model"
)

// Parent seti boşsa child sorgusu hiç yapılmaz.
func TestFetchPropertiesEmptyParentSkipsChildQueries(t *testing.T) {
	src := newFakeSource()

	views, err := FetchProperties(context.Background(), src, PropertyFilter{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(views))

	parents, images, features, types := src.calls()
	assert.Equal(t, 1, parents)
	assert.Equal(t, 0, images)
	assert.Equal(t, 0, features)
	assert.Equal(t, 0, types)
}

func TestFetchPropertiesJoinsChildren(t *testing.T) {
	src := newFakeSource()

	typeID := uint(7)
	src.types = []model.PropertyType{{Model: gormModel(typeID), Code: "villa", Name: "Villa"}}
	src.properties = []model.Property{
		{Model: gormModel(1), Title: "Casa Uno", PropertyTypeID: &typeID},
		{Model: gormModel(2), Title: "Casa Dos"},
	}
	src.images[1] = []model.PropertyImage{
		{Model: gormModel(10), PropertyID: 1, URL: "one.jpg", IsPrimary: true},
	}
	src.features[2] = []model.PropertyFeature{
		{Model: gormModel(20), PropertyID: 2, Name: "Alberca", Value: "sí"},
	}

	views, err := FetchProperties(context.Background(), src, PropertyFilter{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(views))

	assert.Equal(t, "Casa Uno", views[0].Title)
	assert.Equal(t, "villa", views[0].Type)
	assert.Equal(t, "one.jpg", views[0].PrimaryImage)
	assert.Equal(t, 0, len(views[0].Features))

	assert.Equal(t, DefaultPropertyType, views[1].Type)
	assert.Equal(t, 1, len(views[1].Features))
	assert.Equal(t, "Alberca", views[1].Features[0].Name)

	// Child sorguları parent başına değil, parti başına bir kez yapılır
	parents, images, features, types := src.calls()
	assert.Equal(t, 1, parents)
	assert.Equal(t, 1, images)
	assert.Equal(t, 1, features)
	assert.Equal(t, 1, types)
}

// Herhangi bir sorgu hatası tüm yüklemeyi iptal eder, kısmi sonuç dönmez.
func TestFetchPropertiesFailureAbortsWhole(t *testing.T) {
	src := newFakeSource()
	src.properties = []model.Property{{Model: gormModel(1), Title: "Casa"}}
	src.err = errors.New("query failed")

	// Parent sorgusu da hatalı: hiç liste dönmez
	views, err := FetchProperties(context.Background(), src, PropertyFilter{})
	assert.NotEqual(t, nil, err)
	if views != nil {
		t.Fatal("expected nil views on failure")
	}
}

func TestFetchLeads(t *testing.T) {
	src := newFakeSource()
	src.leads = []model.Lead{
		{Model: gormModel(1), FirstName: "Luis", Status: model.LeadStatusInterested},
	}

	views, err := FetchLeads(context.Background(), src, LeadFilter{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(views))
	assert.Equal(t, "Luis", views[0].Name)
	assert.Equal(t, LeadViewConfirmed, views[0].Status)
}
