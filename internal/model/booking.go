package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatuses is the pipeline a booking or lead moves through
var LeadStatuses = []string{
	"Inbound",
	"Qualifying",
	"Proposal Sent",
	"Proposal Reminder",
	"Proposal Accepted",
	"Deposit Requested",
	"Deposit Reminder",
	"Deposit Received",
	"Confirmed",
	"Completed",
	"Closed",
	"Lost",
	"Waitlisted",
}

// CustomerBooking is an appointment booked with one of the user's customers
type CustomerBooking struct {
	Base
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomerName string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	PhoneNumber  string    `gorm:"type:varchar(20);not null" json:"phone_number"`
	LeadStatus   string    `gorm:"type:varchar(30);not null" json:"lead_status"`
	BookingDate  time.Time `gorm:"not null" json:"booking_date"`
	BookingTime  string    `gorm:"type:varchar(30);not null" json:"booking_time"`
	ServiceName  string    `gorm:"type:varchar(255);not null" json:"service_name"`
	Price        Money     `gorm:"type:decimal(12,2);not null" json:"price"`
	Notes        string    `gorm:"type:text;not null;default:''" json:"notes"`
}

func (b *CustomerBooking) OwnerIDs() []uuid.UUID { return []uuid.UUID{b.UserID} }
