package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanakrit/pawmart/app/models"
)

var (
	scopeAll = Policy{SellerOrderScope: "all", ReopenRole: "admin"}
	scopeOwn = Policy{SellerOrderScope: "own_pets", ReopenRole: "admin"}
)

func orderFor(buyerID, sellerID uint) models.Order {
	return models.Order{
		UserID: buyerID,
		Pet:    models.Pet{CreatedByID: sellerID},
	}
}

func TestCanManageCatalog(t *testing.T) {
	assert.False(t, Actor{ID: 1, Role: models.RoleCustomer}.CanManageCatalog())
	assert.True(t, Actor{ID: 2, Role: models.RoleSeller}.CanManageCatalog())
	assert.True(t, Actor{ID: 3, Role: models.RoleAdmin}.CanManageCatalog())
}

func TestCanEditPet(t *testing.T) {
	pet := models.Pet{CreatedByID: 2}

	cases := []struct {
		name  string
		actor Actor
		pol   Policy
		want  bool
	}{
		{"admin edits any pet", Actor{ID: 9, Role: models.RoleAdmin}, scopeOwn, true},
		{"owning seller", Actor{ID: 2, Role: models.RoleSeller}, scopeOwn, true},
		{"other seller scoped out", Actor{ID: 5, Role: models.RoleSeller}, scopeOwn, false},
		{"other seller with scope all", Actor{ID: 5, Role: models.RoleSeller}, scopeAll, true},
		{"customer never", Actor{ID: 2, Role: models.RoleCustomer}, scopeAll, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.actor.CanEditPet(pet, c.pol))
		})
	}
}

func TestCanViewOrder(t *testing.T) {
	o := orderFor(1, 2)

	cases := []struct {
		name  string
		actor Actor
		pol   Policy
		want  bool
	}{
		{"buyer", Actor{ID: 1, Role: models.RoleCustomer}, scopeOwn, true},
		{"other customer", Actor{ID: 7, Role: models.RoleCustomer}, scopeAll, false},
		{"admin", Actor{ID: 9, Role: models.RoleAdmin}, scopeOwn, true},
		{"listing seller", Actor{ID: 2, Role: models.RoleSeller}, scopeOwn, true},
		{"other seller scoped out", Actor{ID: 5, Role: models.RoleSeller}, scopeOwn, false},
		{"other seller with scope all", Actor{ID: 5, Role: models.RoleSeller}, scopeAll, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.actor.CanViewOrder(o, c.pol))
		})
	}
}

func TestCanActOnOrder(t *testing.T) {
	o := orderFor(1, 2)

	// The buyer can always act on their own order, whatever their role.
	assert.True(t, Actor{ID: 1, Role: models.RoleCustomer}.CanActOnOrder(o, scopeOwn))
	assert.False(t, Actor{ID: 7, Role: models.RoleCustomer}.CanActOnOrder(o, scopeAll))
	assert.True(t, Actor{ID: 9, Role: models.RoleAdmin}.CanActOnOrder(o, scopeOwn))
	assert.True(t, Actor{ID: 2, Role: models.RoleSeller}.CanActOnOrder(o, scopeOwn))
	assert.False(t, Actor{ID: 5, Role: models.RoleSeller}.CanActOnOrder(o, scopeOwn))
	assert.True(t, Actor{ID: 5, Role: models.RoleSeller}.CanActOnOrder(o, scopeAll))
}

func TestCanReopenOrder(t *testing.T) {
	o := orderFor(1, 2)
	sellerReopen := Policy{SellerOrderScope: "own_pets", ReopenRole: "seller"}

	// Never a buyer capability, even on their own order.
	assert.False(t, Actor{ID: 1, Role: models.RoleCustomer}.CanReopenOrder(o, sellerReopen))

	assert.True(t, Actor{ID: 9, Role: models.RoleAdmin}.CanReopenOrder(o, scopeOwn))

	// Sellers only when the deployment delegates reopening to them.
	assert.False(t, Actor{ID: 2, Role: models.RoleSeller}.CanReopenOrder(o, scopeOwn))
	assert.True(t, Actor{ID: 2, Role: models.RoleSeller}.CanReopenOrder(o, sellerReopen))
	assert.False(t, Actor{ID: 5, Role: models.RoleSeller}.CanReopenOrder(o, sellerReopen))
}

func TestCanViewStats(t *testing.T) {
	assert.False(t, Actor{Role: models.RoleCustomer}.CanViewStats())
	assert.True(t, Actor{Role: models.RoleSeller}.CanViewStats())
	assert.True(t, Actor{Role: models.RoleAdmin}.CanViewStats())
}
