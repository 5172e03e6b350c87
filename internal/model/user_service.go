package model

import "github.com/google/uuid"

// UserService is an entry in a user's service catalog, optionally a bundle of sub-services
type UserService struct {
	Base
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *UserRef          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ServiceName      string            `gorm:"type:varchar(255);not null" json:"service_name"`
	Bundle           bool              `gorm:"default:false" json:"bundle"`
	ServicesIncluded []ServiceIncluded `gorm:"foreignKey:UserServiceID;constraint:OnDelete:CASCADE" json:"services_included"`
	Duration         float64           `gorm:"not null" json:"duration"`
}

func (s *UserService) OwnerIDs() []uuid.UUID { return []uuid.UUID{s.UserID} }

// ServiceIncluded is one sub-service of a bundle
type ServiceIncluded struct {
	Base
	UserServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ServiceName   string    `gorm:"type:varchar(255);not null" json:"service_name"`
	Price         Money     `gorm:"type:decimal(12,2);not null" json:"price"`
	Duration      float64   `gorm:"not null" json:"duration"`
}
