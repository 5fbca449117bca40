package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer        UserRole = "CUSTOMER"
	RoleDriver          UserRole = "DRIVER"
	RoleRestaurantOwner UserRole = "RESTAURANT_OWNER"
)

// ValidRole reports whether r is one of the registrable roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleRestaurantOwner:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	Profile      *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName   string    `json:"first_name" gorm:"not null"`
	LastName    string    `json:"last_name" gorm:"not null"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Customer is the role record for CUSTOMER users
type Customer struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         string    `json:"user_id" gorm:"uniqueIndex;not null"`
	User           *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DefaultAddress string    `json:"default_address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Driver is the role record for DRIVER users
type Driver struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex;not null"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsOnline   bool      `json:"is_online" gorm:"default:false"`
	CurrentLat float64   `json:"current_lat"`
	CurrentLng float64   `json:"current_lng"`
	Vehicle    *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:DriverID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type VehicleType string

const (
	VehicleCar     VehicleType = "CAR"
	VehicleBicycle VehicleType = "BICYCLE"
	VehicleScooter VehicleType = "SCOOTER"
)

type Vehicle struct {
	ID           string      `json:"id" gorm:"primaryKey;size:36"`
	DriverID     string      `json:"driver_id" gorm:"uniqueIndex;not null"`
	Type         VehicleType `json:"type"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	LicensePlate string      `json:"license_plate"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
