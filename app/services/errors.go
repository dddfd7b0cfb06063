package services

import (
	"errors"
	"fmt"

	"github.com/tanakrit/pawmart/app/models"
	"gorm.io/gorm"
)

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrCategoryExists     = errors.New("category name already exists")
	ErrCategoryInUse      = errors.New("category still has pets")
	ErrPetUnavailable     = errors.New("pet is not available for purchase")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidDelivery    = errors.New("delivery method must be pickup or delivery")
	ErrPickupDateRequired = errors.New("pickup orders need a pickup date")
	ErrInvalidPickupDate  = errors.New("pickup date is not a valid date")
	ErrInvalidRole        = errors.New("role must be customer, seller, or admin")
	ErrOrderNotPending    = errors.New("only pending orders can be edited")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmptyCart          = errors.New("cart is empty")
)

// InsufficientStockError carries how many units remain so the API can tell
// the buyer what is still possible.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransitionError names the rejected state change.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// wrapNotFound converts gorm's record-not-found into the service sentinel
// so controllers never import gorm.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
