package repositories

import (
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/orm"
	"gorm.io/gorm"
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status models.OrderStatus
	PetID  uint
}

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// scopedFor restricts a query to the orders the actor may see. Customers
// see their own orders; sellers see their own plus, per policy, either all
// orders or the orders placed for pets they listed; admins see everything.
func (r *OrderRepository) scopedFor(actor authz.Actor, pol authz.Policy) *orm.Query {
	q := orm.DB().
		Model(&models.Order{}).
		Preload("Pet").
		Preload("Pet.Category").
		Preload("User")

	switch actor.Role {
	case models.RoleAdmin:
		return q
	case models.RoleSeller:
		if pol.SellerOrderScope == "all" {
			return q
		}
		return q.Where(
			"user_id = ? OR pet_id IN (?)",
			actor.ID,
			orm.Gorm().Model(&models.Pet{}).Select("id").Where("created_by_id = ?", actor.ID),
		)
	default:
		return q.Where("user_id = ?", actor.ID)
	}
}

// ListFor returns one page of orders visible to the actor, newest first.
func (r *OrderRepository) ListFor(actor authz.Actor, pol authz.Policy, f OrderFilter, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := r.scopedFor(actor, pol)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PetID != 0 {
		q = q.Where("pet_id = ?", f.PetID)
	}

	var orders []models.Order
	pagination, err := q.Order("created_at desc").GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// FindByID looks up an order with its pet and buyer preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Pet").
		Preload("Pet.Category").
		Preload("User").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// FindByIDForUpdate loads an order inside tx holding a row lock so status
// transitions cannot race each other.
func (r *OrderRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (models.Order, error) {
	var order models.Order
	err := orm.LockForUpdate(tx).Preload("Pet").Where("id = ?", id).First(&order).Error
	return order, err
}

// Create persists a new order record.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	return orm.DB().Save(order)
}

// OrderStats aggregates order counts and revenue.
type OrderStats struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// StatsFor computes order statistics over the actor's visible orders.
func (r *OrderRepository) StatsFor(actor authz.Actor, pol authz.Policy) (OrderStats, error) {
	var stats OrderStats

	count := func(status models.OrderStatus, dest *int64) error {
		q := r.scopedFor(actor, pol)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q.Count(dest)
	}

	if err := count("", &stats.Total); err != nil {
		return stats, err
	}
	if err := count(models.OrderPending, &stats.Pending); err != nil {
		return stats, err
	}
	if err := count(models.OrderCompleted, &stats.Completed); err != nil {
		return stats, err
	}
	if err := count(models.OrderCancelled, &stats.Cancelled); err != nil {
		return stats, err
	}

	// Revenue counts completed orders only.
	var revenue struct{ Total float64 }
	err := r.scopedFor(actor, pol).
		Where("status = ?", models.OrderCompleted).
		Gorm().
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&revenue).Error
	if err != nil {
		return stats, err
	}
	stats.Revenue = revenue.Total

	return stats, nil
}
