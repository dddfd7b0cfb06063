package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/config"
	"github.com/tanakrit/pawmart/pkg/cache"
	"github.com/tanakrit/pawmart/pkg/collection"
	"github.com/tanakrit/pawmart/pkg/logger"
)

// CartItemInput is the payload for adding or updating a cart line.
type CartItemInput struct {
	PetID    uint `json:"pet_id" validate:"required,integer"`
	Quantity int  `json:"quantity" validate:"required,gte=1"`
}

// CheckoutInput carries the delivery choice applied to every cart line.
type CheckoutInput struct {
	DeliveryMethod string `json:"delivery_method" validate:"required,in=pickup,delivery"`
	PickupDate     string `json:"pickup_date" validate:"nullable,date"`
	RecipientName  string `json:"recipient_name" validate:"nullable,max=100"`
}

// CartLine is one entry of the cart view, priced from the live catalog.
type CartLine struct {
	Pet      models.Pet `json:"pet"`
	Quantity int        `json:"quantity"`
	Subtotal float64    `json:"subtotal"`
}

// Cart is the full cart view.
type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CheckoutResult reports what happened to each line. Checkout is
// best-effort per line: lines that cannot be fulfilled stay in the cart
// and are reported as failed.
type CheckoutResult struct {
	Orders []models.Order  `json:"orders"`
	Failed []CheckoutError `json:"failed,omitempty"`
}

// CheckoutError names a cart line that could not become an order.
type CheckoutError struct {
	PetID  uint   `json:"pet_id"`
	Reason string `json:"reason"`
}

// CartService keeps each user's cart as a Redis hash (pet ID → quantity)
// so carts survive restarts and follow the user across devices. The cart
// only holds intent: stock is checked and reserved at checkout, not here.
type CartService struct {
	pets   *repositories.PetRepository
	orders *OrderService
}

func NewCartService() *CartService {
	return &CartService{
		pets:   repositories.NewPetRepository(),
		orders: NewOrderService(),
	}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

// Add puts qty units of a pet into the cart, replacing any existing line.
// The pet must currently be purchasable so dead listings never pile up.
func (s *CartService) Add(actor authz.Actor, in CartItemInput) (Cart, error) {
	if in.Quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	pet, err := s.pets.FindByID(in.PetID)
	if err != nil {
		return Cart{}, wrapNotFound(err)
	}
	if !pet.IsAvailableForSale() {
		return Cart{}, ErrPetUnavailable
	}

	if cache.RDB == nil {
		return Cart{}, errors.New("cart storage unavailable")
	}

	key := cartKey(actor.ID)
	if err := cache.RDB.HSet(cache.Ctx, key, strconv.FormatUint(uint64(in.PetID), 10), in.Quantity).Err(); err != nil {
		return Cart{}, err
	}
	cache.RDB.Expire(cache.Ctx, key, config.CartTTL()) //nolint:errcheck

	return s.View(actor)
}

// Remove drops one pet from the cart.
func (s *CartService) Remove(actor authz.Actor, petID uint) (Cart, error) {
	if cache.RDB == nil {
		return Cart{}, errors.New("cart storage unavailable")
	}

	err := cache.RDB.HDel(cache.Ctx, cartKey(actor.ID), strconv.FormatUint(uint64(petID), 10)).Err()
	if err != nil {
		return Cart{}, err
	}
	return s.View(actor)
}

// Clear empties the cart.
func (s *CartService) Clear(actor authz.Actor) error {
	if cache.RDB == nil {
		return errors.New("cart storage unavailable")
	}
	return cache.RDB.Del(cache.Ctx, cartKey(actor.ID)).Err()
}

// View prices the cart against the live catalog. Lines whose pet vanished
// from the catalog are silently dropped from the view.
func (s *CartService) View(actor authz.Actor) (Cart, error) {
	if cache.RDB == nil {
		return Cart{}, errors.New("cart storage unavailable")
	}

	raw, err := cache.RDB.HGetAll(cache.Ctx, cartKey(actor.ID)).Result()
	if err != nil {
		return Cart{}, err
	}

	cart := Cart{Items: []CartLine{}}
	for petStr, qtyStr := range raw {
		petID, err := strconv.ParseUint(petStr, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			continue
		}

		pet, err := s.pets.FindByID(uint(petID))
		if err != nil {
			continue
		}

		cart.Items = append(cart.Items, CartLine{Pet: pet, Quantity: qty, Subtotal: pet.Price * float64(qty)})
	}
	cart.Total = collection.Sum(cart.Items, func(l CartLine) float64 { return l.Subtotal })

	return cart, nil
}

// Checkout turns every cart line into its own order. Lines that fail (out
// of stock, pet withdrawn) are reported and kept in the cart; successful
// lines are removed.
func (s *CartService) Checkout(actor authz.Actor, in CheckoutInput) (CheckoutResult, error) {
	// Reject a bad delivery choice before any line is touched; it would
	// fail every line identically anyway.
	method := models.DeliveryMethod(in.DeliveryMethod)
	if !method.Valid() {
		return CheckoutResult{}, ErrInvalidDelivery
	}
	if _, err := parsePickupDate(method, in.PickupDate); err != nil {
		return CheckoutResult{}, err
	}

	cart, err := s.View(actor)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(cart.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	result := CheckoutResult{}
	for _, line := range cart.Items {
		order, err := s.orders.Create(actor, CreateOrderInput{
			PetID:          line.Pet.ID,
			Quantity:       line.Quantity,
			DeliveryMethod: in.DeliveryMethod,
			PickupDate:     in.PickupDate,
			RecipientName:  in.RecipientName,
		})
		if err != nil {
			result.Failed = append(result.Failed, CheckoutError{
				PetID:  line.Pet.ID,
				Reason: err.Error(),
			})
			continue
		}

		result.Orders = append(result.Orders, order)
		cache.RDB.HDel(cache.Ctx, cartKey(actor.ID), strconv.FormatUint(uint64(line.Pet.ID), 10)) //nolint:errcheck
	}

	logger.Info("cart checkout",
		"user_id", actor.ID,
		"ordered", len(result.Orders),
		"failed", len(result.Failed),
	)

	return result, nil
}
