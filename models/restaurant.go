package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a list of strings as a JSON column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for StringList", src)
}

// DayHours is a single day's opening window
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps weekday name to opening window, stored as JSON
type OpeningHours map[string]DayHours

func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return "{}", nil
	}
	b, err := json.Marshal(h)
	return string(b), err
}

func (h *OpeningHours) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	}
	return fmt.Errorf("unsupported type %T for OpeningHours", src)
}

type Restaurant struct {
	ID           string       `json:"id" gorm:"primaryKey;size:36"`
	UserID       string       `json:"user_id" gorm:"uniqueIndex;not null"`
	Owner        *User        `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Cuisine      StringList   `json:"cuisine" gorm:"type:text"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	PostalCode   string       `json:"postal_code"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Image        string       `json:"image"`
	Rating       float64      `json:"rating" gorm:"default:0"`
	MinimumOrder float64      `json:"minimum_order"`
	DeliveryFee  float64      `json:"delivery_fee"`
	IsOpen       bool         `json:"is_open" gorm:"default:false"`
	OpeningHours OpeningHours `json:"opening_hours" gorm:"type:text"`
	MenuItems    []MenuItem   `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type MenuItem struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	RestaurantID string    `json:"restaurant_id" gorm:"index;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
