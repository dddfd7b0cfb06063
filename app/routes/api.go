// Package routes declares the HTTP API surface.
package routes

import (
	"github.com/tanakrit/pawmart/app/controllers"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/middleware"
	"github.com/tanakrit/pawmart/pkg/rbac"
	"github.com/tanakrit/pawmart/pkg/router"
)

// RegisterAPI mounts every API route on r.
func RegisterAPI(r *router.Router) {
	authCtrl := controllers.NewAuthController()
	categoryCtrl := controllers.NewCategoryController()
	petCtrl := controllers.NewPetController()
	orderCtrl := controllers.NewOrderController()
	cartCtrl := controllers.NewCartController()
	userCtrl := controllers.NewUserController()

	staff := rbac.HasRole(string(models.RoleSeller), string(models.RoleAdmin))
	admin := rbac.HasRole(string(models.RoleAdmin))

	api := r.Group("/api")

	// Auth
	api.Post("/auth/register", "auth.register", ctx.Wrap(authCtrl.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authCtrl.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authCtrl.Refresh))
	api.Get("/auth/me", "auth.me", ctx.Wrap(authCtrl.Me), middleware.Auth)

	// Public catalog reads
	api.Get("/categories", "categories.index", ctx.Wrap(categoryCtrl.Index))
	api.Get("/categories/{id}", "categories.show", ctx.Wrap(categoryCtrl.Show))
	api.Get("/pets", "pets.index", ctx.Wrap(petCtrl.Index))
	api.Get("/pets/{id}", "pets.show", ctx.Wrap(petCtrl.Show))

	// Catalog management
	manage := api.Group("", middleware.Auth, staff)
	manage.Post("/categories", "categories.store", ctx.Wrap(categoryCtrl.Store))
	manage.Put("/categories/{id}", "categories.update", ctx.Wrap(categoryCtrl.Update))
	manage.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(categoryCtrl.Destroy), admin)
	manage.Post("/pets", "pets.store", ctx.Wrap(petCtrl.Store))
	manage.Put("/pets/{id}", "pets.update", ctx.Wrap(petCtrl.Update))
	manage.Delete("/pets/{id}", "pets.destroy", ctx.Wrap(petCtrl.Destroy))
	manage.Patch("/pets/{id}/availability", "pets.availability", ctx.Wrap(petCtrl.SetAvailability))

	// Stock
	manage.Post("/pets/{id}/stock/restock", "stock.restock", ctx.Wrap(petCtrl.Restock))
	manage.Post("/pets/{id}/stock/reduce", "stock.reduce", ctx.Wrap(petCtrl.Reduce))
	manage.Put("/pets/{id}/stock", "stock.set", ctx.Wrap(petCtrl.SetStock))
	manage.Get("/stock/low", "stock.low", ctx.Wrap(petCtrl.LowStock))
	manage.Get("/stock/out", "stock.out", ctx.Wrap(petCtrl.OutOfStock))
	manage.Get("/stock/summary", "stock.summary", ctx.Wrap(petCtrl.Summary))

	// Orders
	orders := api.Group("/orders", middleware.Auth)
	orders.Get("", "orders.index", ctx.Wrap(orderCtrl.Index))
	orders.Post("", "orders.store", ctx.Wrap(orderCtrl.Store))
	orders.Get("/stats", "orders.stats", ctx.Wrap(orderCtrl.Stats), staff)
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderCtrl.Show))
	orders.Patch("/{id}/status", "orders.status", ctx.Wrap(orderCtrl.UpdateStatus))
	orders.Post("/{id}/cancel", "orders.cancel", ctx.Wrap(orderCtrl.Cancel))
	orders.Post("/{id}/complete", "orders.complete", ctx.Wrap(orderCtrl.Complete))
	orders.Patch("/{id}/quantity", "orders.quantity", ctx.Wrap(orderCtrl.UpdateQuantity))

	// User administration
	users := api.Group("/users", middleware.Auth, admin)
	users.Get("", "users.index", ctx.Wrap(userCtrl.Index))
	users.Patch("/{id}/role", "users.role", ctx.Wrap(userCtrl.UpdateRole))

	// Cart
	cart := api.Group("/cart", middleware.Auth)
	cart.Get("", "cart.show", ctx.Wrap(cartCtrl.Show))
	cart.Delete("", "cart.clear", ctx.Wrap(cartCtrl.Clear))
	cart.Post("/items", "cart.add", ctx.Wrap(cartCtrl.AddItem))
	cart.Delete("/items/{petId}", "cart.remove", ctx.Wrap(cartCtrl.RemoveItem))
	cart.Post("/checkout", "cart.checkout", ctx.Wrap(cartCtrl.Checkout))
}
