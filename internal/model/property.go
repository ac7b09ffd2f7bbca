package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusAvailable         PropertyStatus = "available"
	PropertyStatusReserved          PropertyStatus = "reserved"
	PropertyStatusSold              PropertyStatus = "sold"
	PropertyStatusUnderConstruction PropertyStatus = "under_construction"
)

// Currency Types
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyGBP Currency = "GBP"
)

type Property struct {
	gorm.Model
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"not null"`
	Currency    Currency       `json:"currency" gorm:"not null;default:'USD'"`
	Status      PropertyStatus `json:"status" gorm:"not null;default:'available';index"`

	// Location fields
	Address   string  `json:"address" gorm:"type:text"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Measure / layout fields
	TotalArea     float64 `json:"total_area"`
	BuiltArea     float64 `json:"built_area"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	ParkingSpaces int     `json:"parking_spaces"`

	// Catalog flags
	Featured  bool `json:"featured" gorm:"default:false"`
	Published bool `json:"published" gorm:"default:false;index"`

	PropertyTypeID *uint `json:"property_type_id"`
	DevelopmentID  *uint `json:"development_id"`

	CreatedBy uint `json:"created_by"`
	UpdatedBy uint `json:"updated_by"`

	// İlişkiler
	PropertyType *PropertyType     `json:"property_type" gorm:"foreignKey:PropertyTypeID"`
	Development  *Development      `json:"development" gorm:"foreignKey:DevelopmentID"`
	Images       []PropertyImage   `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Features     []PropertyFeature `json:"features" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type PropertyImage struct {
	gorm.Model
	PropertyID   uint   `json:"property_id" gorm:"index"`
	URL          string `json:"url" gorm:"not null"`
	IsPrimary    bool   `json:"is_primary" gorm:"default:false"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// BeforeCreate property oluşturulurken slug'ı otomatik oluşturur
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Title)

		// Slug'ın benzersiz olduğundan emin ol
		var count int64
		tx.Model(&Property{}).Where("slug = ?", s).Count(&count)
		if count > 0 {
			s = s + "-" + p.CreatedAt.Format("20060102150405")
		}

		p.Slug = s
	}
	return nil
}
