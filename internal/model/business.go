package model

import "github.com/google/uuid"

// Business is a company profile owned by a single user
type Business struct {
	Base
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BusinessName string    `gorm:"type:varchar(255);not null" json:"business_name"`
	BusinessType string    `gorm:"type:varchar(120);not null" json:"business_type"`
	OwnerName    string    `gorm:"type:varchar(255);not null" json:"owner_name"`
	Phone        string    `gorm:"type:varchar(20);not null" json:"phone"`
	Address      string    `gorm:"type:text;not null" json:"address"`
}

func (b *Business) OwnerIDs() []uuid.UUID { return []uuid.UUID{b.UserID} }
