package model

import (
	"gorm.io/gorm"
)

type PropertyFeature struct {
	gorm.Model
	PropertyID uint   `json:"property_id" gorm:"index"`
	Name       string `json:"name" gorm:"not null"` // Özellik adı (örn: "Piscina")
	Value      string `json:"value"`                // Serbest metin değer

	// İlişki
	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// PropertyType küçük referans tablosu (house, apartment, land...)
type PropertyType struct {
	gorm.Model
	Code string `json:"code" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`
}

// Development bir proje/siteye bağlı ilanlar için opsiyonel üst kayıt
type Development struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Location    string `json:"location"`
}
