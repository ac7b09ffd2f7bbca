package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	// İlişkiler
	Properties []Property `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"email":        u.Email,
		"full_name":    u.GetFullName(),
		"phone_number": u.PhoneNumber,
		"avatar":       u.Avatar,
		"is_active":    u.IsActive,
	}
}
