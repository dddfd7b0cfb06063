package controllers

import (
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

// Show returns the caller's cart priced against the live catalog.
func (cc *CartController) Show(c *ctx.Context) {
	cart, err := cc.service.View(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(cart)
}

// AddItem puts a pet into the cart or replaces its quantity.
func (cc *CartController) AddItem(c *ctx.Context) {
	var in services.CartItemInput
	if !c.BindJSON(&in) {
		return
	}

	cart, err := cc.service.Add(actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(cart)
}

// RemoveItem drops a pet from the cart.
func (cc *CartController) RemoveItem(c *ctx.Context) {
	cart, err := cc.service.Remove(actor(c), c.ParamUint("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(cart)
}

// Clear empties the cart.
func (cc *CartController) Clear(c *ctx.Context) {
	if err := cc.service.Clear(actor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.SuccessMessage("Cart cleared", nil)
}

// Checkout converts every cart line into an order. Lines that cannot be
// fulfilled stay in the cart and are reported in the response.
func (cc *CartController) Checkout(c *ctx.Context) {
	var in services.CheckoutInput
	if !c.BindJSON(&in) {
		return
	}

	result, err := cc.service.Checkout(actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(result)
}
