// Package controllers wires HTTP requests to the services. Controllers
// stay thin: bind, build the actor, call the service, translate errors.
package controllers

import (
	"errors"
	"net/http"

	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/logger"
	"github.com/tanakrit/pawmart/pkg/middleware"
)

// actor builds the authz principal from the authenticated request.
// middleware.Auth guarantees both values are present on protected routes.
func actor(c *ctx.Context) authz.Actor {
	id, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)
	return authz.Actor{ID: id, Role: models.Role(role)}
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *ctx.Context, err error) {
	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, map[string]interface{}{
			"status":  http.StatusConflict,
			"message": "Insufficient stock",
			"errors": map[string]int{
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrPermissionDenied):
		c.Forbidden()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Invalid credentials")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrPetUnavailable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderNotPending):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidDelivery),
		errors.Is(err, services.ErrPickupDateRequired),
		errors.Is(err, services.ErrInvalidPickupDate),
		errors.Is(err, services.ErrInvalidRole):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		c.Error(http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(c.Context()).Error("unhandled service error", "error", err.Error())
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}
