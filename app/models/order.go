package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// DeliveryMethod is how the buyer receives the pet.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// orderTransitions is the set of allowed status moves. Completed is
// terminal; cancelled can be reopened by a privileged actor.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderCompleted: true, OrderCancelled: true},
	OrderCancelled: {OrderPending: true},
	OrderCompleted: {},
}

// CanTransition reports whether moving from → to is ever allowed,
// independent of who is asking or whether stock suffices.
func CanTransition(from, to OrderStatus) bool {
	return orderTransitions[from][to]
}

// Order records a purchase of a single pet. TotalPrice is always
// pet price × quantity at the time of the last quantity-affecting mutation.
type Order struct {
	gorm.Model
	Reference string `gorm:"uniqueIndex;size:36;not null" json:"reference"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PetID  uint `gorm:"not null;index" json:"pet_id"`
	Pet    Pet  `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	Quantity   int         `gorm:"not null;default:1" json:"quantity"`
	TotalPrice float64     `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     OrderStatus `gorm:"size:20;default:pending;index" json:"status"`

	DeliveryMethod DeliveryMethod `gorm:"size:20;default:pickup" json:"delivery_method"`
	PickupDate     *time.Time     `json:"pickup_date,omitempty"`
	RecipientName  string         `gorm:"size:100;not null" json:"recipient_name"`
}

// CanBeCancelled reports whether a normal cancel is possible.
func (o *Order) CanBeCancelled() bool { return o.Status == OrderPending }

// CanBeCompleted reports whether completion is possible.
func (o *Order) CanBeCompleted() bool { return o.Status == OrderPending }
