package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidStatus represents the lifecycle of a delivery bid:
// PENDING → ACCEPTED or REJECTED (terminal).
type BidStatus string

const (
	BidPending  BidStatus = "PENDING"
	BidAccepted BidStatus = "ACCEPTED"
	BidRejected BidStatus = "REJECTED"
)

// DeliveryBid is a driver's offered price and time to deliver a specific order.
// Nothing prevents multiple bids per driver per order, or bids on an order that
// already has an assigned driver.
type DeliveryBid struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	OrderID       string    `json:"order_id" gorm:"index;not null"`
	Order         *Order    `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	DriverID      string    `json:"driver_id" gorm:"index;not null"`
	Driver        *Driver   `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Amount        float64   `json:"amount" gorm:"not null"`
	EstimatedTime int       `json:"estimated_time" gorm:"not null"` // minutes
	Status        BidStatus `json:"status" gorm:"not null;default:'PENDING'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b *DeliveryBid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryCompleted DeliveryStatus = "COMPLETED"
)

// Delivery links an order to its assigned driver. Created only as a side
// effect of accepting a DeliveryBid.
type Delivery struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	OrderID      string         `json:"order_id" gorm:"index;not null"`
	DriverID     string         `json:"driver_id" gorm:"index;not null"`
	Driver       *Driver        `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Status       DeliveryStatus `json:"status" gorm:"not null;default:'PENDING'"`
	PickupTime   *time.Time     `json:"pickup_time,omitempty"`
	DeliveryTime *time.Time     `json:"delivery_time,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
