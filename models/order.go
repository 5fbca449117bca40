package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusPrepared       OrderStatus = "PREPARED"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusDriverAssigned OrderStatus = "DRIVER_ASSIGNED"
	StatusDriverPickup   OrderStatus = "DRIVER_PICKUP"
	StatusDelivering     OrderStatus = "DELIVERING"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

// PaymentStatus tracks whether an order has been paid for
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

type Order struct {
	ID               string               `json:"id" gorm:"primaryKey;size:36"`
	CustomerID       string               `json:"customer_id" gorm:"index;not null"`
	Customer         *Customer            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID     string               `json:"restaurant_id" gorm:"index;not null"`
	Restaurant       *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DeliveryAddress  string               `json:"delivery_address"`
	Subtotal         float64              `json:"subtotal"`
	DeliveryFee      float64              `json:"delivery_fee"`
	Tax              float64              `json:"tax"`
	Total            float64              `json:"total"`
	Status           OrderStatus          `json:"status" gorm:"not null;default:'PENDING'"`
	PaymentStatus    PaymentStatus        `json:"payment_status" gorm:"not null;default:'UNPAID'"`
	BlockchainTxHash string               `json:"blockchain_tx_hash,omitempty"`
	Items            []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Delivery         *Delivery            `json:"delivery,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory    []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	OrderID    string    `json:"order_id" gorm:"index;not null"`
	MenuItemID string    `json:"menu_item_id" gorm:"not null"`
	MenuItem   *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Name       string    `json:"name"` // snapshot at time of order
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"` // snapshot at time of order
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderStatusHistory is the append-only audit trail of an order's transitions.
// Rows are never updated or deleted.
type OrderStatusHistory struct {
	ID        string      `json:"id" gorm:"primaryKey;size:36"`
	OrderID   string      `json:"order_id" gorm:"index;not null"`
	Status    OrderStatus `json:"status" gorm:"not null"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
