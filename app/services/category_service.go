package services

import (
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
)

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=500"`
}

// CategoryService handles the pet category catalog.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService() *CategoryService {
	return &CategoryService{categories: repositories.NewCategoryRepository()}
}

// All lists every category.
func (s *CategoryService) All() ([]models.Category, error) {
	return s.categories.All()
}

// Get returns one category by ID.
func (s *CategoryService) Get(id uint) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	return category, wrapNotFound(err)
}

// Create adds a category. Staff only; names are unique.
func (s *CategoryService) Create(actor authz.Actor, in CategoryInput) (models.Category, error) {
	if !actor.CanManageCatalog() {
		return models.Category{}, ErrPermissionDenied
	}
	if s.categories.NameTaken(in.Name) {
		return models.Category{}, ErrCategoryExists
	}

	category := models.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Update renames or redescribes a category. Staff only.
func (s *CategoryService) Update(actor authz.Actor, id uint, in CategoryInput) (models.Category, error) {
	if !actor.CanManageCatalog() {
		return models.Category{}, ErrPermissionDenied
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return models.Category{}, wrapNotFound(err)
	}

	category.Name = in.Name
	category.Description = in.Description
	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Delete removes an empty category. Admin only; a category that still has
// pets cannot be removed.
func (s *CategoryService) Delete(actor authz.Actor, id uint) error {
	if actor.Role != models.RoleAdmin {
		return ErrPermissionDenied
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return wrapNotFound(err)
	}

	n, err := s.categories.PetCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	return s.categories.Delete(&category)
}
