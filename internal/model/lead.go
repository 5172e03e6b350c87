package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a sales opportunity with a creator (UserID) and an assignee (OwnerID)
type Lead struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *UserRef  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	ClientName  string    `gorm:"type:varchar(255);not null" json:"client_name"`
	PhoneNumber string    `gorm:"type:varchar(20);not null" json:"phone_number"`
	LeadStatus  string    `gorm:"type:varchar(30);not null" json:"lead_status"`
	BookingDate time.Time `gorm:"not null" json:"booking_date"`
	BookingTime string    `gorm:"type:varchar(30);not null" json:"booking_time"`
	ServiceName string    `gorm:"type:varchar(255);not null" json:"service_name"`
	Price       Money     `gorm:"type:decimal(12,2);not null" json:"price"`
	Notes       string    `gorm:"type:text;not null;default:''" json:"notes"`
}

// OwnerIDs returns both the creator and the assignee; either one grants access
func (l *Lead) OwnerIDs() []uuid.UUID { return []uuid.UUID{l.UserID, l.OwnerID} }
