package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WebConfigKey tek CMS dokümanının sabit anahtarı
const WebConfigKey = "site"

// WebConfig sitenin CMS içeriğini tek bir JSON doküman olarak tutar.
// Versiyonlama yok, last-write-wins.
type WebConfig struct {
	gorm.Model
	Key  string         `json:"key" gorm:"uniqueIndex;not null"`
	Data datatypes.JSON `json:"data"`
}
