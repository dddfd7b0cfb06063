package controllers

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/app/resources"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/resource"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Index lists the orders visible to the caller, filtered by ?status= and
// ?pet=.
func (oc *OrderController) Index(c *ctx.Context) {
	filter := repositories.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		PetID:  uint(c.QueryInt("pet", 0)),
	}
	page, limit := c.Page()

	orders, pagination, err := oc.service.List(actor(c), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(resource.Collection(orders, resources.Order), pagination)
}

// Show returns one order.
func (oc *OrderController) Show(c *ctx.Context) {
	order, err := oc.service.Get(actor(c), c.ParamUint("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Order(order))
}

// Store places an order, reserving stock.
func (oc *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.service.Create(actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resources.Order(order))
}

// UpdateStatus applies a status transition.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	var in services.UpdateStatusInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.service.UpdateStatus(actor(c), c.ParamUint("id"), models.OrderStatus(in.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Order(order))
}

// Cancel moves a pending order to cancelled and restores stock.
func (oc *OrderController) Cancel(c *ctx.Context) {
	order, err := oc.service.Cancel(actor(c), c.ParamUint("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Order(order))
}

// Complete marks a pending order fulfilled.
func (oc *OrderController) Complete(c *ctx.Context) {
	order, err := oc.service.Complete(actor(c), c.ParamUint("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Order(order))
}

// UpdateQuantity edits a pending order's quantity.
func (oc *OrderController) UpdateQuantity(c *ctx.Context) {
	var in services.UpdateQuantityInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.service.UpdateQuantity(actor(c), c.ParamUint("id"), in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Order(order))
}

// Stats returns order statistics for staff dashboards.
func (oc *OrderController) Stats(c *ctx.Context) {
	stats, err := oc.service.Stats(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(stats)
}
