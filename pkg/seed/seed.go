package seed

import (
	"log"

	"gorm.io/gorm"

	"casavista_backend/internal/model"
)

// SeedPropertyTypes küçük referans tablosunu doldurur
func SeedPropertyTypes(db *gorm.DB) {
	types := []model.PropertyType{
		{Code: "house", Name: "House"},
		{Code: "apartment", Name: "Apartment"},
		{Code: "condo", Name: "Condo"},
		{Code: "villa", Name: "Villa"},
		{Code: "townhouse", Name: "Townhouse"},
		{Code: "land", Name: "Land"},
		{Code: "commercial", Name: "Commercial"},
		{Code: "office", Name: "Office"},
	}

	for _, t := range types {
		result := db.FirstOrCreate(&t, model.PropertyType{Code: t.Code})
		if result.Error != nil {
			log.Printf("Error creating property type %s: %v", t.Code, result.Error)
		}
	}

	log.Println("Property types seeded successfully!")
}

// SeedWebConfig boş CMS dokümanını oluşturur
func SeedWebConfig(db *gorm.DB) {
	cfg := model.WebConfig{
		Key:  model.WebConfigKey,
		Data: []byte(`{"hero":{"title":"","subtitle":""},"contact":{"phone":"","email":"","whatsapp":""},"social":{}}`),
	}

	result := db.FirstOrCreate(&cfg, model.WebConfig{Key: model.WebConfigKey})
	if result.Error != nil {
		log.Printf("Error creating web config: %v", result.Error)
		return
	}

	log.Println("Web config seeded successfully!")
}
