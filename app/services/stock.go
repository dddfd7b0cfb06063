package services

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/pkg/event"
	"github.com/tanakrit/pawmart/pkg/metrics"
	"gorm.io/gorm"
)

// Stock events fired when a pet crosses a threshold. Payload is the pet
// after the change.
const (
	EventStockLow      = "stock.low"
	EventStockDepleted = "stock.depleted"
)

// reserveStock atomically takes qty units from the pet's stock inside tx.
// The row stays locked until the surrounding transaction commits, so two
// concurrent buyers can never both take the last unit. Stock never goes
// negative; a short row fails the whole transaction.
func reserveStock(tx *gorm.DB, petRepo *repositories.PetRepository, petID uint, qty int) (models.Pet, error) {
	if qty < 1 {
		return models.Pet{}, ErrInvalidQuantity
	}

	pet, err := petRepo.FindByIDForUpdate(tx, petID)
	if err != nil {
		return models.Pet{}, wrapNotFound(err)
	}

	if pet.StockQuantity < qty {
		metrics.StockRejections.Inc()
		return models.Pet{}, &InsufficientStockError{Available: pet.StockQuantity, Requested: qty}
	}

	pet.StockQuantity -= qty
	if err := tx.Save(&pet).Error; err != nil {
		return models.Pet{}, err
	}

	notifyStockLevel(pet)
	return pet, nil
}

// releaseStock returns qty units to the pet's stock inside tx. Restocking
// has no upper bound.
func releaseStock(tx *gorm.DB, petRepo *repositories.PetRepository, petID uint, qty int) (models.Pet, error) {
	if qty < 1 {
		return models.Pet{}, ErrInvalidQuantity
	}

	pet, err := petRepo.FindByIDForUpdate(tx, petID)
	if err != nil {
		return models.Pet{}, wrapNotFound(err)
	}

	pet.StockQuantity += qty
	if err := tx.Save(&pet).Error; err != nil {
		return models.Pet{}, err
	}

	return pet, nil
}

// notifyStockLevel fires threshold events after a stock decrease.
func notifyStockLevel(pet models.Pet) {
	switch {
	case pet.IsOutOfStock():
		event.Fire(EventStockDepleted, pet)
	case pet.IsLowStock():
		event.Fire(EventStockLow, pet)
	}
}
