package livesync

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"casavista_backend/internal/model"
)

func TestMapPropertyDefaults(t *testing.T) {
	// Tamamen boş satır: her alan tanımlı fallback ile dolar, panic yok.
	view := MapProperty(model.Property{}, nil, nil, nil)

	assert.Equal(t, uint(0), view.ID)
	assert.Equal(t, "", view.Title)
	assert.Equal(t, DefaultPropertyStatus, view.Status)
	assert.Equal(t, DefaultPropertyType, view.Type)
	assert.Equal(t, string(model.CurrencyUSD), view.Currency)
	assert.Equal(t, "", view.PrimaryImage)
	assert.Equal(t, 0, len(view.Images))
	assert.Equal(t, 0, len(view.Features))
}

func TestMapPropertyUnknownStatusFallsBack(t *testing.T) {
	p := model.Property{Status: model.PropertyStatus("liquidated")}
	view := MapProperty(p, nil, nil, nil)
	assert.Equal(t, DefaultPropertyStatus, view.Status)
}

func TestMapPropertyUnknownTypeFallsBack(t *testing.T) {
	ptype := &model.PropertyType{Code: "castle"}
	view := MapProperty(model.Property{}, nil, nil, ptype)
	assert.Equal(t, DefaultPropertyType, view.Type)

	ptype = &model.PropertyType{Code: "Apartment"}
	view = MapProperty(model.Property{}, nil, nil, ptype)
	assert.Equal(t, "apartment", view.Type)
}

func TestMapPropertyPrimaryImageSelection(t *testing.T) {
	images := []model.PropertyImage{
		{Model: gormModel(1), URL: "a.jpg", IsPrimary: false},
		{Model: gormModel(2), URL: "b.jpg", IsPrimary: true},
		{Model: gormModel(3), URL: "c.jpg", IsPrimary: false},
	}

	view := MapProperty(model.Property{}, images, nil, nil)
	assert.Equal(t, "b.jpg", view.PrimaryImage)

	// Hiçbiri primary işaretli değilse verilen listedeki ilk resim kazanır
	images = []model.PropertyImage{
		{Model: gormModel(1), URL: "only.jpg", IsPrimary: false},
	}
	view = MapProperty(model.Property{}, images, nil, nil)
	assert.Equal(t, "only.jpg", view.PrimaryImage)
}

func TestMapPropertyImagesSortedByDisplayOrder(t *testing.T) {
	images := []model.PropertyImage{
		{Model: gormModel(1), URL: "third.jpg", DisplayOrder: 2},
		{Model: gormModel(2), URL: "first.jpg", DisplayOrder: 0},
		{Model: gormModel(3), URL: "second.jpg", DisplayOrder: 1},
	}

	view := MapProperty(model.Property{}, images, nil, nil)

	assert.Equal(t, 3, len(view.Images))
	assert.Equal(t, "first.jpg", view.Images[0].URL)
	assert.Equal(t, "second.jpg", view.Images[1].URL)
	assert.Equal(t, "third.jpg", view.Images[2].URL)
}

func TestMapLeadDisplayNameAndAliases(t *testing.T) {
	lead := model.Lead{
		FirstName: "Ana",
		LastName:  "García",
		Notes:     "Quiere visitar el fin de semana",
	}

	view := MapLead(lead)

	assert.Equal(t, "Ana García", view.Name)
	assert.Equal(t, view.Notes, view.Message)
	assert.Equal(t, "Quiere visitar el fin de semana", view.Notes)
}

func TestMapLeadEmptyNeverPanics(t *testing.T) {
	view := MapLead(model.Lead{})
	assert.Equal(t, "", view.Name)
	assert.Equal(t, DefaultLeadStatus, view.Status)
}

func TestLeadStatusReadMap(t *testing.T) {
	cases := map[model.LeadStatus]string{
		model.LeadStatusNew:         LeadViewPending,
		model.LeadStatusContacted:   LeadViewPending,
		model.LeadStatusInterested:  LeadViewConfirmed,
		model.LeadStatusAppointment: LeadViewConfirmed,
		model.LeadStatusNegotiating: LeadViewConfirmed,
		model.LeadStatusClosed:      LeadViewCompleted,
		model.LeadStatusDiscarded:   LeadViewCancelled,
	}

	for backend, want := range cases {
		assert.Equal(t, want, LeadStatusToView(backend))
	}

	// Bilinmeyen değer fallback'e düşer
	assert.Equal(t, DefaultLeadStatus, LeadStatusToView(model.LeadStatus("spam")))
}

// TestLeadStatusRoundTripIsLossy iki yönlü eşlemenin bilinen asimetrisini
// sabitler: interested, panel üzerinden geri yazıldığında contacted olur.
// Bu davranış kasıtlıdır, "düzeltilmemelidir".
func TestLeadStatusRoundTripIsLossy(t *testing.T) {
	viewStatus := LeadStatusToView(model.LeadStatusInterested)
	assert.Equal(t, LeadViewConfirmed, viewStatus)

	written := LeadStatusFromView(viewStatus)
	assert.Equal(t, model.LeadStatusContacted, written)
	assert.NotEqual(t, model.LeadStatusInterested, written)

	// appointment da aynı panel değerine düşer ve aynı şekilde geri yazılır
	assert.Equal(t, LeadViewConfirmed, LeadStatusToView(model.LeadStatusAppointment))
	assert.Equal(t, model.LeadStatusContacted, LeadStatusFromView(LeadViewConfirmed))
}

func TestLeadStatusWriteMap(t *testing.T) {
	assert.Equal(t, model.LeadStatusNew, LeadStatusFromView(LeadViewPending))
	assert.Equal(t, model.LeadStatusContacted, LeadStatusFromView(LeadViewConfirmed))
	assert.Equal(t, model.LeadStatusClosed, LeadStatusFromView(LeadViewCompleted))
	assert.Equal(t, model.LeadStatusDiscarded, LeadStatusFromView(LeadViewCancelled))
	assert.Equal(t, model.LeadStatusNew, LeadStatusFromView("nonsense"))
}
