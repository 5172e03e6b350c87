package model

import "github.com/google/uuid"

// Address is a location owned by a single user
type Address struct {
	Base
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AddressLine1     string    `gorm:"column:address_line_1;type:varchar(255);not null" json:"address_line_1"`
	AddressLine2     string    `gorm:"column:address_line_2;type:varchar(255);not null;default:''" json:"address_line_2"`
	City             string    `gorm:"type:varchar(120);not null" json:"city"`
	ZipCode          string    `gorm:"type:varchar(20);not null" json:"zip_code"`
	State            string    `gorm:"type:varchar(120);not null" json:"state"`
	IsSharedLocation LooseBool `json:"is_shared_location"`
	BoothNo          string    `gorm:"type:varchar(50);not null;default:''" json:"booth_no"`
}

// OwnerIDs returns the user the address belongs to
func (a *Address) OwnerIDs() []uuid.UUID { return []uuid.UUID{a.UserID} }
