package model

import "github.com/google/uuid"

// FeeType enum constants
const (
	FeeTypePerKm    = "per_km"
	FeeTypeFlatRate = "flat_rate"
	FeeTypePerHour  = "per_hour"
)

// Keyword fees accepted in place of an amount
const (
	FeeFree       = "free"
	FeeStartsFrom = "starts_from"
	FeeFixed      = "fixed"
)

// TravelFee describes how a user charges for travel
type TravelFee struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FeeType     string    `gorm:"type:varchar(20);not null" json:"fee_type"` // per_km, flat_rate, per_hour
	Fee         FeeValue  `gorm:"type:varchar(32);not null" json:"fee"`
	MaxDistance float64   `gorm:"not null" json:"max_distance"`
}

func (t *TravelFee) OwnerIDs() []uuid.UUID { return []uuid.UUID{t.UserID} }
