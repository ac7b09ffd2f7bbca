package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead Status — backend sözlüğü. Admin panelin kullandığı daha dar sözlüğe
// eşleme internal/livesync tarafında yapılır.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusInterested  LeadStatus = "interested"
	LeadStatusAppointment LeadStatus = "appointment"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusClosed      LeadStatus = "closed"
	LeadStatusDiscarded   LeadStatus = "discarded"
)

// Lead Source
type LeadSource string

const (
	LeadSourceContactForm LeadSource = "contact_form"
	LeadSourceChatWidget  LeadSource = "chat_widget"
	LeadSourceQuickForm   LeadSource = "quick_form"
)

type Lead struct {
	gorm.Model
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Notes     string     `json:"notes" gorm:"type:text"`
	Status    LeadStatus `json:"status" gorm:"default:'new';index"`
	Source    LeadSource `json:"source" gorm:"default:'contact_form'"`

	ReadStatus  bool       `json:"read_status" gorm:"default:false"`
	ContactedAt *time.Time `json:"contacted_at"`

	PropertyID *uint `json:"property_id" gorm:"index"`

	// İlişkiler
	Property *Property `json:"property" gorm:"foreignKey:PropertyID"`
}

// ValidLeadStatus status geçişlerinde gelen değeri kontrol eder
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew,
		LeadStatusContacted,
		LeadStatusInterested,
		LeadStatusAppointment,
		LeadStatusNegotiating,
		LeadStatusClosed,
		LeadStatusDiscarded:
		return true
	}
	return false
}
