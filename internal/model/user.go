package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account owning scheduling records
type User struct {
	Base
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName        string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName         string     `gorm:"type:varchar(255);not null" json:"last_name"`
	Enabled          LooseBool  `json:"enabled"`
	Password         string     `gorm:"column:new_password;type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	SendWelcomeEmail LooseBool  `json:"send_welcome_email"`
	Roles            []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"roles"`
}

// UserRole is a single role tag attached to a user
type UserRole struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Role   string    `gorm:"type:varchar(50);not null" json:"role"`
}

// BeforeCreate assigns the row key
func (r *UserRole) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RoleNames flattens the role rows into their tags
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}
