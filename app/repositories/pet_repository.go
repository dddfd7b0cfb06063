package repositories

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/orm"
	"gorm.io/gorm"
)

// PetFilter narrows a pet listing.
type PetFilter struct {
	CategoryID    uint
	SellerID      uint
	Gender        string
	Search        string
	AvailableOnly bool
}

// PetRepository handles database operations for Pet.
type PetRepository struct{}

func NewPetRepository() *PetRepository {
	return &PetRepository{}
}

func (r *PetRepository) filtered(f PetFilter) *orm.Query {
	q := orm.DB().Model(&models.Pet{}).Preload("Category").Preload("CreatedBy")

	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.SellerID != 0 {
		q = q.Where("created_by_id = ?", f.SellerID)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.AvailableOnly {
		q = q.Where("is_available = ? AND stock_quantity > 0", true)
	}

	return q
}

// List returns one page of pets matching the filter, newest first.
func (r *PetRepository) List(f PetFilter, page, limit int) ([]models.Pet, orm.Pagination, error) {
	var pets []models.Pet
	pagination, err := r.filtered(f).Order("created_at desc").GetWithPagination(&pets, page, limit)
	return pets, pagination, err
}

// FindByID looks up a pet with its category and seller preloaded.
func (r *PetRepository) FindByID(id uint) (models.Pet, error) {
	var pet models.Pet
	err := orm.DB().
		Model(&models.Pet{}).
		Preload("Category").
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&pet)
	return pet, err
}

// FindByIDForUpdate loads a pet inside tx holding a row lock, so stock
// arithmetic is safe under concurrent checkouts.
func (r *PetRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (models.Pet, error) {
	var pet models.Pet
	err := orm.LockForUpdate(tx).Where("id = ?", id).First(&pet).Error
	return pet, err
}

// Create persists a new pet record.
func (r *PetRepository) Create(pet *models.Pet) error {
	return orm.DB().Create(pet)
}

// Update persists changes to an existing pet.
func (r *PetRepository) Update(pet *models.Pet) error {
	return orm.DB().Save(pet)
}

// Delete removes a pet record.
func (r *PetRepository) Delete(pet *models.Pet) error {
	return orm.DB().Delete(pet)
}

// LowStock returns pets above zero but at or below their threshold.
func (r *PetRepository) LowStock() ([]models.Pet, error) {
	var pets []models.Pet
	err := orm.DB().
		Model(&models.Pet{}).
		Preload("Category").
		Where("stock_quantity > 0 AND stock_quantity <= min_stock_threshold").
		Order("stock_quantity asc").
		Get(&pets)
	return pets, err
}

// OutOfStock returns pets with no stock left.
func (r *PetRepository) OutOfStock() ([]models.Pet, error) {
	var pets []models.Pet
	err := orm.DB().
		Model(&models.Pet{}).
		Preload("Category").
		Where("stock_quantity <= 0").
		Order("updated_at desc").
		Get(&pets)
	return pets, err
}

// StockSummary aggregates inventory counts for the dashboard.
type StockSummary struct {
	TotalPets  int64 `json:"total_pets"`
	InStock    int64 `json:"in_stock"`
	LowStock   int64 `json:"low_stock"`
	OutOfStock int64 `json:"out_of_stock"`
	TotalUnits int64 `json:"total_units"`
}

// Summary computes the stock summary in a handful of count queries.
func (r *PetRepository) Summary() (StockSummary, error) {
	var s StockSummary

	if err := orm.DB().Model(&models.Pet{}).Count(&s.TotalPets); err != nil {
		return s, err
	}
	if err := orm.DB().Model(&models.Pet{}).
		Where("stock_quantity > min_stock_threshold").
		Count(&s.InStock); err != nil {
		return s, err
	}
	if err := orm.DB().Model(&models.Pet{}).
		Where("stock_quantity > 0 AND stock_quantity <= min_stock_threshold").
		Count(&s.LowStock); err != nil {
		return s, err
	}
	if err := orm.DB().Model(&models.Pet{}).
		Where("stock_quantity <= 0").
		Count(&s.OutOfStock); err != nil {
		return s, err
	}

	var total struct{ Total int64 }
	if err := orm.Gorm().Model(&models.Pet{}).
		Select("COALESCE(SUM(stock_quantity), 0) as total").
		Scan(&total).Error; err != nil {
		return s, err
	}
	s.TotalUnits = total.Total

	return s, nil
}
