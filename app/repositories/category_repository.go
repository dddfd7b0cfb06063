package repositories

import (
	"time"

	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/cache"
	"github.com/tanakrit/pawmart/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category. Listings are small and change rarely, so
// they are served from a short-lived cache.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Order("name asc").
		Cache("categories:all", 5*time.Minute, &categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// NameTaken reports whether a category with this name already exists.
func (r *CategoryRepository) NameTaken(name string) bool {
	var n int64
	orm.DB().Model(&models.Category{}).Where("name = ?", name).Count(&n) //nolint:errcheck
	return n > 0
}

// Create persists a new category and invalidates the listing cache.
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := orm.DB().Create(category); err != nil {
		return err
	}
	cache.Forget("categories:all") //nolint:errcheck
	return nil
}

// Update persists changes to a category and invalidates the listing cache.
func (r *CategoryRepository) Update(category *models.Category) error {
	if err := orm.DB().Save(category); err != nil {
		return err
	}
	cache.Forget("categories:all") //nolint:errcheck
	return nil
}

// Delete removes a category and invalidates the listing cache.
func (r *CategoryRepository) Delete(category *models.Category) error {
	if err := orm.DB().Delete(category); err != nil {
		return err
	}
	cache.Forget("categories:all") //nolint:errcheck
	return nil
}

// PetCount returns how many pets reference the category.
func (r *CategoryRepository) PetCount(id uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Pet{}).Where("category_id = ?", id).Count(&n)
	return n, err
}
