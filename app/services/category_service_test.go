package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit/pawmart/app/models"
)

func TestCategoryCreatePermissions(t *testing.T) {
	setupDB(t)
	svc := NewCategoryService()
	customer := mkUser(t, "buyer", models.RoleCustomer)
	seller := mkUser(t, "shop", models.RoleSeller)

	_, err := svc.Create(asActor(customer), CategoryInput{Name: "Dogs"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	cat, err := svc.Create(asActor(seller), CategoryInput{Name: "Dogs"})
	require.NoError(t, err)
	assert.Equal(t, "Dogs", cat.Name)
}

func TestCategoryDuplicateName(t *testing.T) {
	setupDB(t)
	svc := NewCategoryService()
	admin := mkUser(t, "root", models.RoleAdmin)

	_, err := svc.Create(asActor(admin), CategoryInput{Name: "Dogs"})
	require.NoError(t, err)

	_, err = svc.Create(asActor(admin), CategoryInput{Name: "Dogs"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCategoryUpdate(t *testing.T) {
	setupDB(t)
	svc := NewCategoryService()
	admin := mkUser(t, "root", models.RoleAdmin)

	cat, err := svc.Create(asActor(admin), CategoryInput{Name: "Dogs"})
	require.NoError(t, err)

	updated, err := svc.Update(asActor(admin), cat.ID, CategoryInput{Name: "Cats", Description: "felines"})
	require.NoError(t, err)
	assert.Equal(t, "Cats", updated.Name)
	assert.Equal(t, "felines", updated.Description)

	_, err = svc.Update(asActor(admin), 9999, CategoryInput{Name: "Birds"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDeleteRules(t *testing.T) {
	setupDB(t)
	svc := NewCategoryService()
	admin := mkUser(t, "root", models.RoleAdmin)
	seller := mkUser(t, "shop", models.RoleSeller)

	// Sellers may create categories but only admins may delete them.
	cat, err := svc.Create(asActor(admin), CategoryInput{Name: "Dogs"})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(asActor(seller), cat.ID), ErrPermissionDenied)

	// A category that still has pets cannot go.
	pet := mkPet(t, seller, 1, 1)
	assert.ErrorIs(t, svc.Delete(asActor(admin), pet.CategoryID), ErrCategoryInUse)

	require.NoError(t, svc.Delete(asActor(admin), cat.ID))
	_, err = svc.Get(cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
