// Package authz centralises who may do what to pets and orders.
//
// Handlers build an Actor from the authenticated request and ask the
// policy questions here instead of scattering role checks across the
// services.
package authz

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/config"
)

// Actor is the authenticated principal performing an action.
type Actor struct {
	ID   uint
	Role models.Role
}

// Policy holds the deployment-configurable authorisation knobs.
type Policy struct {
	// SellerOrderScope is "all" (sellers see and manage every order) or
	// "own_pets" (only orders for pets the seller listed).
	SellerOrderScope string

	// ReopenRole is "admin" (only admins may move a cancelled order back
	// to pending) or "seller" (sellers may too, subject to scope).
	ReopenRole string
}

// PolicyFromConfig reads the active policy from the environment.
func PolicyFromConfig() Policy {
	return Policy{
		SellerOrderScope: config.SellerOrderScope(),
		ReopenRole:       config.OrderReopenRole(),
	}
}

// Privileged reports whether the actor holds a staff role.
func (a Actor) Privileged() bool {
	return a.Role.Privileged()
}

// CanManageCatalog reports whether the actor may create pets or categories.
func (a Actor) CanManageCatalog() bool {
	return a.Privileged()
}

// CanEditPet reports whether the actor may update, restock, or delete a pet.
// Admins may edit any pet; sellers only the pets they listed.
func (a Actor) CanEditPet(p models.Pet, pol Policy) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	if a.Role == models.RoleSeller {
		if pol.SellerOrderScope == "all" {
			return true
		}
		return p.CreatedByID == a.ID
	}
	return false
}

// sellerCovers reports whether the policy puts this order inside the
// seller's scope.
func sellerCovers(a Actor, o models.Order, pol Policy) bool {
	if pol.SellerOrderScope == "all" {
		return true
	}
	return o.Pet.CreatedByID == a.ID
}

// CanViewOrder reports whether the actor may read the order.
func (a Actor) CanViewOrder(o models.Order, pol Policy) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller:
		return o.UserID == a.ID || sellerCovers(a, o, pol)
	default:
		return o.UserID == a.ID
	}
}

// CanActOnOrder reports whether the actor may cancel, complete, or edit a
// pending order. The buyer may always act on their own order; staff per
// role and scope.
func (a Actor) CanActOnOrder(o models.Order, pol Policy) bool {
	if o.UserID == a.ID {
		return true
	}
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller:
		return sellerCovers(a, o, pol)
	default:
		return false
	}
}

// CanReopenOrder reports whether the actor may move a cancelled order back
// to pending. This is never a buyer capability.
func (a Actor) CanReopenOrder(o models.Order, pol Policy) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller:
		return pol.ReopenRole == "seller" && sellerCovers(a, o, pol)
	default:
		return false
	}
}

// CanViewStats reports whether the actor may read order statistics.
func (a Actor) CanViewStats() bool {
	return a.Privileged()
}

// CanManageUsers reports whether the actor may list accounts and change
// roles. Admin only; sellers manage listings, not people.
func (a Actor) CanManageUsers() bool {
	return a.Role == models.RoleAdmin
}
