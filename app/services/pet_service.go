package services

import (
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/pkg/logger"
	"github.com/tanakrit/pawmart/pkg/orm"
	"gorm.io/gorm"
)

// PetInput is the payload for creating or updating a pet listing.
type PetInput struct {
	Name              string  `json:"name" validate:"required,min=2,max=100"`
	Description       string  `json:"description" validate:"nullable,max=2000"`
	CategoryID        uint    `json:"category_id" validate:"required,integer"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	ImageURL          string  `json:"image_url" validate:"nullable,max=500"`
	Gender            string  `json:"gender" validate:"nullable,in=male,female,unknown"`
	StockQuantity     int     `json:"stock_quantity" validate:"nullable,gte=0"`
	MinStockThreshold int     `json:"min_stock_threshold" validate:"nullable,gte=0"`
	IsAvailable       *bool   `json:"is_available"`
}

// StockAdjustInput is the payload for the restock and reduce endpoints.
type StockAdjustInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// StockSetInput is the payload for setting an absolute stock level.
// A pointer so that an explicit zero is distinguishable from an omitted
// field; the service enforces quantity >= 0.
type StockSetInput struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// PetService handles the pet catalog and its stock levels.
type PetService struct {
	pets       *repositories.PetRepository
	categories *repositories.CategoryRepository
	policy     authz.Policy
}

func NewPetService() *PetService {
	return &PetService{
		pets:       repositories.NewPetRepository(),
		categories: repositories.NewCategoryRepository(),
		policy:     authz.PolicyFromConfig(),
	}
}

// List returns one page of the catalog. Customers only ever see pets that
// are purchasable; staff see everything so they can manage hidden and
// out-of-stock listings.
func (s *PetService) List(actor authz.Actor, f repositories.PetFilter, page, limit int) ([]models.Pet, orm.Pagination, error) {
	if !actor.Privileged() {
		f.AvailableOnly = true
	}
	return s.pets.List(f, page, limit)
}

// Get returns one pet. Hidden pets stay visible so a buyer with a direct
// link sees "unavailable" rather than a 404, matching the storefront.
func (s *PetService) Get(id uint) (models.Pet, error) {
	pet, err := s.pets.FindByID(id)
	return pet, wrapNotFound(err)
}

// Create adds a pet listing owned by the acting seller or admin.
func (s *PetService) Create(actor authz.Actor, in PetInput) (models.Pet, error) {
	if !actor.CanManageCatalog() {
		return models.Pet{}, ErrPermissionDenied
	}

	if _, err := s.categories.FindByID(in.CategoryID); err != nil {
		return models.Pet{}, wrapNotFound(err)
	}

	pet := models.Pet{
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		Price:             in.Price,
		ImageURL:          in.ImageURL,
		Gender:            in.Gender,
		StockQuantity:     in.StockQuantity,
		MinStockThreshold: in.MinStockThreshold,
		IsAvailable:       true,
		CreatedByID:       actor.ID,
	}
	if in.IsAvailable != nil {
		pet.IsAvailable = *in.IsAvailable
	}

	if err := s.pets.Create(&pet); err != nil {
		return models.Pet{}, err
	}
	return s.Get(pet.ID)
}

// Update edits a pet listing. Admins edit any pet, sellers their own.
// Stock is intentionally not editable here; use the stock endpoints so
// every change goes through the locked path.
func (s *PetService) Update(actor authz.Actor, id uint, in PetInput) (models.Pet, error) {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		return models.Pet{}, wrapNotFound(err)
	}
	if !actor.CanEditPet(pet, s.policy) {
		return models.Pet{}, ErrPermissionDenied
	}

	if in.CategoryID != pet.CategoryID {
		if _, err := s.categories.FindByID(in.CategoryID); err != nil {
			return models.Pet{}, wrapNotFound(err)
		}
	}

	pet.Name = in.Name
	pet.Description = in.Description
	pet.CategoryID = in.CategoryID
	pet.Price = in.Price
	pet.ImageURL = in.ImageURL
	pet.Gender = in.Gender
	pet.MinStockThreshold = in.MinStockThreshold
	if in.IsAvailable != nil {
		pet.IsAvailable = *in.IsAvailable
	}

	if err := s.pets.Update(&pet); err != nil {
		return models.Pet{}, err
	}
	return s.Get(pet.ID)
}

// SetAvailability toggles whether a pet can be purchased at all.
func (s *PetService) SetAvailability(actor authz.Actor, id uint, available bool) (models.Pet, error) {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		return models.Pet{}, wrapNotFound(err)
	}
	if !actor.CanEditPet(pet, s.policy) {
		return models.Pet{}, ErrPermissionDenied
	}

	pet.IsAvailable = available
	if err := s.pets.Update(&pet); err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

// Delete removes a pet listing.
func (s *PetService) Delete(actor authz.Actor, id uint) error {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		return wrapNotFound(err)
	}
	if !actor.CanEditPet(pet, s.policy) {
		return ErrPermissionDenied
	}
	return s.pets.Delete(&pet)
}

// ReduceStock removes qty units, failing when fewer remain. Runs under a
// row lock like every other stock write.
func (s *PetService) ReduceStock(actor authz.Actor, id uint, qty int) (models.Pet, error) {
	if err := s.authorizeStockChange(actor, id); err != nil {
		return models.Pet{}, err
	}

	var pet models.Pet
	err := orm.Transaction(func(tx *gorm.DB) error {
		var err error
		pet, err = reserveStock(tx, s.pets, id, qty)
		return err
	})
	if err != nil {
		return models.Pet{}, err
	}

	logger.Info("stock reduced", "pet_id", id, "by", qty, "remaining", pet.StockQuantity)
	return pet, nil
}

// IncreaseStock adds qty units.
func (s *PetService) IncreaseStock(actor authz.Actor, id uint, qty int) (models.Pet, error) {
	if err := s.authorizeStockChange(actor, id); err != nil {
		return models.Pet{}, err
	}

	var pet models.Pet
	err := orm.Transaction(func(tx *gorm.DB) error {
		var err error
		pet, err = releaseStock(tx, s.pets, id, qty)
		return err
	})
	if err != nil {
		return models.Pet{}, err
	}

	logger.Info("stock increased", "pet_id", id, "by", qty, "now", pet.StockQuantity)
	return pet, nil
}

// SetStock replaces the stock level with an absolute quantity (>= 0).
func (s *PetService) SetStock(actor authz.Actor, id uint, qty int) (models.Pet, error) {
	if qty < 0 {
		return models.Pet{}, ErrInvalidQuantity
	}
	if err := s.authorizeStockChange(actor, id); err != nil {
		return models.Pet{}, err
	}

	var pet models.Pet
	err := orm.Transaction(func(tx *gorm.DB) error {
		var err error
		pet, err = s.pets.FindByIDForUpdate(tx, id)
		if err != nil {
			return wrapNotFound(err)
		}
		pet.StockQuantity = qty
		if err := tx.Save(&pet).Error; err != nil {
			return err
		}
		notifyStockLevel(pet)
		return nil
	})
	if err != nil {
		return models.Pet{}, err
	}

	logger.Info("stock set", "pet_id", id, "quantity", qty)
	return pet, nil
}

// LowStock lists pets at or below their threshold. Staff only.
func (s *PetService) LowStock(actor authz.Actor) ([]models.Pet, error) {
	if !actor.Privileged() {
		return nil, ErrPermissionDenied
	}
	return s.pets.LowStock()
}

// OutOfStock lists depleted pets. Staff only.
func (s *PetService) OutOfStock(actor authz.Actor) ([]models.Pet, error) {
	if !actor.Privileged() {
		return nil, ErrPermissionDenied
	}
	return s.pets.OutOfStock()
}

// Summary returns the inventory dashboard numbers. Staff only.
func (s *PetService) Summary(actor authz.Actor) (repositories.StockSummary, error) {
	if !actor.Privileged() {
		return repositories.StockSummary{}, ErrPermissionDenied
	}
	return s.pets.Summary()
}

func (s *PetService) authorizeStockChange(actor authz.Actor, id uint) error {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		return wrapNotFound(err)
	}
	if !actor.CanEditPet(pet, s.policy) {
		return ErrPermissionDenied
	}
	return nil
}
