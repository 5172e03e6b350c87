package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base carries the primary key and timestamps shared by every table
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b Base) GetID() uuid.UUID { return b.ID }

// BeforeCreate assigns the UUID client side so every driver gets the same key shape
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UserRef is the populated owner embedded in record responses (email, first/last name only)
type UserRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func (UserRef) TableName() string { return "users" }

// Money is a decimal amount that serializes as a bare JSON number
type Money struct {
	decimal.Decimal
}

// NewMoney converts a validated JSON number into a Money value
func NewMoney(v float64) Money {
	return Money{Decimal: decimal.NewFromFloat(v)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// LooseBool holds a boolean column that accepts one narrow alternative encoding.
// Values other than true/false are kept exactly as supplied and handed to the
// database unchanged; the store decides what they mean.
type LooseBool struct {
	raw interface{}
}

// NewLooseBool wraps an already coerced value
func NewLooseBool(v interface{}) LooseBool {
	return LooseBool{raw: v}
}

// Raw returns the stored value as supplied
func (b LooseBool) Raw() interface{} { return b.raw }

// True reports whether the value is the boolean true
func (b LooseBool) True() bool {
	v, ok := b.raw.(bool)
	return ok && v
}

func (b LooseBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.raw)
}

func (b *LooseBool) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.raw)
}

// Value implements driver.Valuer
func (b LooseBool) Value() (driver.Value, error) {
	switch v := b.raw.(type) {
	case nil:
		return nil, nil
	case bool, string, float64, int64:
		return v, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(encoded), nil
	}
}

// Scan implements sql.Scanner
func (b *LooseBool) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		b.raw = nil
	case bool:
		b.raw = v
	case int64:
		if v == 0 || v == 1 {
			b.raw = v == 1
		} else {
			b.raw = v
		}
	case []byte:
		b.raw = string(v)
	case string, float64:
		b.raw = v
	default:
		return fmt.Errorf("unsupported boolean column value %T", src)
	}
	return nil
}

func (LooseBool) GormDataType() string { return "boolean" }

// FeeValue is either a non-negative amount or one of the keyword fees (free, starts_from, fixed)
type FeeValue struct {
	Amount *decimal.Decimal
	Label  string
}

// FeeAmount wraps a numeric fee
func FeeAmount(v float64) FeeValue {
	d := decimal.NewFromFloat(v)
	return FeeValue{Amount: &d}
}

// FeeLabel wraps a keyword fee
func FeeLabel(label string) FeeValue {
	return FeeValue{Label: label}
}

func (f FeeValue) MarshalJSON() ([]byte, error) {
	if f.Amount != nil {
		return []byte(f.Amount.String()), nil
	}
	return json.Marshal(f.Label)
}

func (f *FeeValue) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*f = FeeLabel(label)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = FeeValue{Amount: &d}
	return nil
}

// Value implements driver.Valuer
func (f FeeValue) Value() (driver.Value, error) {
	if f.Amount != nil {
		return f.Amount.String(), nil
	}
	return f.Label, nil
}

// Scan implements sql.Scanner
func (f *FeeValue) Scan(src interface{}) error {
	var text string
	switch v := src.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case int64:
		d := decimal.NewFromInt(v)
		*f = FeeValue{Amount: &d}
		return nil
	case float64:
		d := decimal.NewFromFloat(v)
		*f = FeeValue{Amount: &d}
		return nil
	default:
		return fmt.Errorf("unsupported fee column value %T", src)
	}
	if d, err := decimal.NewFromString(text); err == nil {
		*f = FeeValue{Amount: &d}
		return nil
	}
	*f = FeeLabel(text)
	return nil
}
