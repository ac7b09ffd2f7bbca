// Package livesync keeps an in-memory admin view of catalog entities in step
// with the database: an initial batched load, a per-table change stream, a
// pure list reconciler, and mutation helpers that patch local state
// optimistically. Each store owns its own list; two stores over the same
// table are independent copies.
package livesync

import (
	"time"
)

// ViewImage bir ilan resminin görünüm modeli.
type ViewImage struct {
	ID           uint   `json:"id"`
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

type ViewFeature struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ViewProperty admin panelin tükettiği birleştirilmiş ilan görünümü.
// Her alan tanımlı bir fallback ile doldurulur, eksik veri asla hata üretmez.
type ViewProperty struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	TotalArea     float64 `json:"total_area"`
	BuiltArea     float64 `json:"built_area"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	ParkingSpaces int     `json:"parking_spaces"`

	Featured  bool `json:"featured"`
	Published bool `json:"published"`

	PrimaryImage string        `json:"primary_image"`
	Images       []ViewImage   `json:"images"`
	Features     []ViewFeature `json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v ViewProperty) EntityID() uint { return v.ID }

// ViewLead admin panelin tükettiği form başvurusu görünümü. Status alanı
// panel sözlüğündedir (pending/confirmed/completed/cancelled); backend
// sözlüğünden okuma eşlemesi mapper'dadır.
type ViewLead struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`

	// Notes ve Message aynı içeriği taşır; Message eski tüketiciler için alias.
	Notes   string `json:"notes"`
	Message string `json:"message"`

	Source     string `json:"source"`
	ReadStatus bool   `json:"read_status"`
	PropertyID *uint  `json:"property_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (v ViewLead) EntityID() uint { return v.ID }
