package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/pkg/logger"
	"github.com/tanakrit/pawmart/pkg/metrics"
	"github.com/tanakrit/pawmart/pkg/orm"
	"gorm.io/gorm"
)

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	PetID          uint   `json:"pet_id" validate:"required,integer"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
	DeliveryMethod string `json:"delivery_method" validate:"required,in=pickup,delivery"`
	PickupDate     string `json:"pickup_date" validate:"nullable,date"`
	RecipientName  string `json:"recipient_name" validate:"nullable,max=100"`
}

// UpdateStatusInput is the payload for a status transition.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,in=pending,completed,cancelled"`
}

// UpdateQuantityInput is the payload for editing a pending order's quantity.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// OrderService owns the order lifecycle. Every path that moves stock runs
// inside one transaction with the pet row locked, so the invariant "sum of
// pending order quantities never exceeds what was taken from stock" holds
// under concurrency.
type OrderService struct {
	orders *repositories.OrderRepository
	pets   *repositories.PetRepository
	users  *repositories.UserRepository
	policy authz.Policy
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders: repositories.NewOrderRepository(),
		pets:   repositories.NewPetRepository(),
		users:  repositories.NewUserRepository(),
		policy: authz.PolicyFromConfig(),
	}
}

// parsePickupDate enforces the delivery contract: a pickup order carries
// a valid date, a delivery order carries none.
func parsePickupDate(method models.DeliveryMethod, raw string) (*time.Time, error) {
	if method != models.DeliveryPickup {
		return nil, nil
	}
	if raw == "" {
		return nil, ErrPickupDateRequired
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return nil, ErrInvalidPickupDate
	}
	return &t, nil
}

// Create places a pending order for the acting user, reserving stock.
// A pet hidden from sale is refused no matter who asks.
func (s *OrderService) Create(actor authz.Actor, in CreateOrderInput) (models.Order, error) {
	if in.Quantity < 1 {
		return models.Order{}, ErrInvalidQuantity
	}

	method := models.DeliveryMethod(in.DeliveryMethod)
	if !method.Valid() {
		return models.Order{}, ErrInvalidDelivery
	}

	pickup, err := parsePickupDate(method, in.PickupDate)
	if err != nil {
		return models.Order{}, err
	}

	// Every order names a recipient; the buyer is the default.
	recipient := strings.TrimSpace(in.RecipientName)
	if recipient == "" {
		buyer, err := s.users.FindByID(actor.ID)
		if err != nil {
			return models.Order{}, wrapNotFound(err)
		}
		recipient = buyer.FullName()
	}

	var order models.Order
	err = orm.Transaction(func(tx *gorm.DB) error {
		pet, err := s.pets.FindByIDForUpdate(tx, in.PetID)
		if err != nil {
			return wrapNotFound(err)
		}
		if !pet.IsAvailable {
			return ErrPetUnavailable
		}
		if pet.StockQuantity < in.Quantity {
			metrics.StockRejections.Inc()
			return &InsufficientStockError{Available: pet.StockQuantity, Requested: in.Quantity}
		}

		pet.StockQuantity -= in.Quantity
		if err := tx.Save(&pet).Error; err != nil {
			return err
		}
		notifyStockLevel(pet)

		order = models.Order{
			Reference:      uuid.NewString(),
			UserID:         actor.ID,
			PetID:          pet.ID,
			Quantity:       in.Quantity,
			TotalPrice:     pet.Price * float64(in.Quantity),
			Status:         models.OrderPending,
			DeliveryMethod: method,
			PickupDate:     pickup,
			RecipientName:  recipient,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersTotal.WithLabelValues(string(models.OrderPending)).Inc()
	logger.Info("order created",
		"order_id", order.ID,
		"reference", order.Reference,
		"pet_id", order.PetID,
		"quantity", order.Quantity,
	)

	full, err := s.orders.FindByID(order.ID)
	if err != nil {
		return order, nil
	}
	return full, nil
}

// Get returns one order, enforcing visibility.
func (s *OrderService) Get(actor authz.Actor, id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, wrapNotFound(err)
	}
	if !actor.CanViewOrder(order, s.policy) {
		return models.Order{}, ErrPermissionDenied
	}
	return order, nil
}

// List returns one page of the actor's visible orders.
func (s *OrderService) List(actor authz.Actor, f repositories.OrderFilter, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListFor(actor, s.policy, f, page, limit)
}

// Cancel moves a pending order to cancelled and returns its stock.
// Cancelling an already-cancelled order is a no-op, so retried requests
// cannot restore stock twice.
func (s *OrderService) Cancel(actor authz.Actor, id uint) (models.Order, error) {
	return s.transition(actor, id, models.OrderCancelled)
}

// Complete marks a pending order fulfilled. Stock was already taken at
// creation, so nothing moves.
func (s *OrderService) Complete(actor authz.Actor, id uint) (models.Order, error) {
	return s.transition(actor, id, models.OrderCompleted)
}

// UpdateStatus applies an explicit status transition.
func (s *OrderService) UpdateStatus(actor authz.Actor, id uint, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, &TransitionError{To: status}
	}
	return s.transition(actor, id, status)
}

func (s *OrderService) transition(actor authz.Actor, id uint, to models.OrderStatus) (models.Order, error) {
	var order models.Order
	changed := false
	err := orm.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			return wrapNotFound(err)
		}

		// Idempotent: asking for the state it is already in changes nothing.
		if order.Status == to {
			if !actor.CanViewOrder(order, s.policy) {
				return ErrPermissionDenied
			}
			return nil
		}

		if to == models.OrderPending {
			// Reopening a cancelled order is a privileged action.
			if !actor.CanReopenOrder(order, s.policy) {
				return ErrPermissionDenied
			}
		} else if !actor.CanActOnOrder(order, s.policy) {
			return ErrPermissionDenied
		}

		if !models.CanTransition(order.Status, to) {
			return &TransitionError{From: order.Status, To: to}
		}

		switch to {
		case models.OrderCancelled:
			// Give the reserved units back.
			if _, err := releaseStock(tx, s.pets, order.PetID, order.Quantity); err != nil {
				return err
			}
		case models.OrderPending:
			// Reopening re-reserves stock; refuse when it ran out meanwhile.
			if _, err := reserveStock(tx, s.pets, order.PetID, order.Quantity); err != nil {
				return err
			}
		}

		order.Status = to
		changed = true
		return tx.Save(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	if changed {
		metrics.OrdersTotal.WithLabelValues(string(to)).Inc()
		logger.Info("order status changed", "order_id", order.ID, "status", string(to))
	}

	full, err := s.orders.FindByID(order.ID)
	if err != nil {
		return order, nil
	}
	return full, nil
}

// UpdateQuantity edits a pending order's quantity, settling the stock
// difference and repricing the total. Shrinking returns units; growing
// takes more and fails when the pet cannot cover the increase.
func (s *OrderService) UpdateQuantity(actor authz.Actor, id uint, qty int) (models.Order, error) {
	if qty < 1 {
		return models.Order{}, ErrInvalidQuantity
	}

	var order models.Order
	err := orm.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			return wrapNotFound(err)
		}
		if !actor.CanActOnOrder(order, s.policy) {
			return ErrPermissionDenied
		}
		if order.Status != models.OrderPending {
			return ErrOrderNotPending
		}

		delta := qty - order.Quantity
		var pet models.Pet
		switch {
		case delta > 0:
			pet, err = reserveStock(tx, s.pets, order.PetID, delta)
		case delta < 0:
			pet, err = releaseStock(tx, s.pets, order.PetID, -delta)
		default:
			pet, err = s.pets.FindByIDForUpdate(tx, order.PetID)
		}
		if err != nil {
			return err
		}

		order.Quantity = qty
		order.TotalPrice = pet.Price * float64(qty)
		return tx.Save(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	logger.Info("order quantity changed", "order_id", order.ID, "quantity", qty)

	full, err := s.orders.FindByID(order.ID)
	if err != nil {
		return order, nil
	}
	return full, nil
}

// Stats returns order statistics over the actor's visible orders.
// Staff only.
func (s *OrderService) Stats(actor authz.Actor) (repositories.OrderStats, error) {
	if !actor.CanViewStats() {
		return repositories.OrderStats{}, ErrPermissionDenied
	}
	return s.orders.StatsFor(actor, s.policy)
}
