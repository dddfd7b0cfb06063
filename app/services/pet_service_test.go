package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/config"
	"github.com/tanakrit/pawmart/pkg/database"
)

func TestPetCreate(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	customer := mkUser(t, "buyer", models.RoleCustomer)
	cat := mkCategory(t, "Dogs")

	in := PetInput{Name: "Rex", CategoryID: cat.ID, Price: 250, StockQuantity: 3, MinStockThreshold: 1}

	_, err := svc.Create(asActor(customer), in)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	pet, err := svc.Create(asActor(seller), in)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, pet.CreatedByID)
	assert.True(t, pet.IsAvailable)
	assert.Equal(t, models.StockInStock, pet.StockStatus())

	in.CategoryID = 9999
	_, err = svc.Create(asActor(seller), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPetListHidesUnavailableFromCustomers(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	customer := mkUser(t, "buyer", models.RoleCustomer)

	visible := mkPet(t, seller, 5, 1)
	depleted := mkPet(t, seller, 0, 1)
	hidden := mkPet(t, seller, 5, 1)
	require.NoError(t, database.DB.Model(&models.Pet{}).Where("id = ?", hidden.ID).Update("is_available", false).Error)

	pets, _, err := svc.List(asActor(customer), repositories.PetFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, visible.ID, pets[0].ID)

	pets, _, err = svc.List(asActor(seller), repositories.PetFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, pets, 3)
	_ = depleted
}

func TestPetUpdateScopedToOwnPets(t *testing.T) {
	setupDB(t)
	config.Set("SELLER_ORDER_SCOPE", "own_pets")
	svc := NewPetService()

	owner := mkUser(t, "shop", models.RoleSeller)
	rival := mkUser(t, "rival", models.RoleSeller)
	admin := mkUser(t, "root", models.RoleAdmin)
	pet := mkPet(t, owner, 5, 1)

	in := PetInput{Name: "Renamed", CategoryID: pet.CategoryID, Price: 300}

	_, err := svc.Update(asActor(rival), pet.ID, in)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(asActor(owner), pet.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 300.0, updated.Price)
	// Stock is only editable through the stock endpoints.
	assert.Equal(t, 5, updated.StockQuantity)

	_, err = svc.Update(asActor(admin), pet.ID, in)
	require.NoError(t, err)
}

func TestPetSetAvailability(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	pet := mkPet(t, seller, 5, 1)

	off, err := svc.SetAvailability(asActor(seller), pet.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsAvailable)
	assert.False(t, off.IsAvailableForSale())

	on, err := svc.SetAvailability(asActor(seller), pet.ID, true)
	require.NoError(t, err)
	assert.True(t, on.IsAvailableForSale())
}

func TestReduceStockToZero(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	pet := mkPet(t, seller, 3, 1)

	got, err := svc.ReduceStock(asActor(seller), pet.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, models.StockOut, got.StockStatus())
}

func TestReduceStockInsufficient(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	pet := mkPet(t, seller, 2, 1)

	_, err := svc.ReduceStock(asActor(seller), pet.ID, 5)
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// A failed reduction must not touch the row.
	assert.Equal(t, 2, stockOf(t, pet.ID))
}

func TestIncreaseStock(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	pet := mkPet(t, seller, 0, 1)

	got, err := svc.IncreaseStock(asActor(seller), pet.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.StockQuantity)
	assert.Equal(t, models.StockInStock, got.StockStatus())
}

func TestSetStock(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	customer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 7, 1)

	_, err := svc.SetStock(asActor(seller), pet.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.SetStock(asActor(customer), pet.ID, 3)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.SetStock(asActor(seller), pet.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestStockReports(t *testing.T) {
	setupDB(t)
	svc := NewPetService()
	seller := mkUser(t, "shop", models.RoleSeller)
	customer := mkUser(t, "buyer", models.RoleCustomer)

	mkPet(t, seller, 10, 2) // healthy
	low := mkPet(t, seller, 1, 2)
	out := mkPet(t, seller, 0, 2)

	_, err := svc.LowStock(asActor(customer))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	lows, err := svc.LowStock(asActor(seller))
	require.NoError(t, err)
	require.Len(t, lows, 1)
	assert.Equal(t, low.ID, lows[0].ID)

	outs, err := svc.OutOfStock(asActor(seller))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, out.ID, outs[0].ID)

	sum, err := svc.Summary(asActor(seller))
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.TotalPets)
	assert.Equal(t, int64(1), sum.InStock)
	assert.Equal(t, int64(1), sum.LowStock)
	assert.Equal(t, int64(1), sum.OutOfStock)
	assert.Equal(t, int64(11), sum.TotalUnits)
}
