package controllers

import (
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/app/resources"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/resource"
)

type PetController struct {
	service *services.PetService
}

func NewPetController() *PetController {
	return &PetController{service: services.NewPetService()}
}

// Index lists the catalog with optional filters:
// ?category=, ?seller=, ?gender=, ?q=, ?page=, ?limit=.
func (pc *PetController) Index(c *ctx.Context) {
	filter := repositories.PetFilter{
		CategoryID: uint(c.QueryInt("category", 0)),
		SellerID:   uint(c.QueryInt("seller", 0)),
		Gender:     c.Query("gender"),
		Search:     c.Query("q"),
	}
	page, limit := c.Page()

	pets, pagination, err := pc.service.List(actor(c), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(resource.Collection(pets, resources.Pet), pagination)
}

// Show returns one pet with its computed stock status.
func (pc *PetController) Show(c *ctx.Context) {
	pet, err := pc.service.Get(c.ParamUint("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// Store creates a pet listing.
func (pc *PetController) Store(c *ctx.Context) {
	var in services.PetInput
	if !c.BindJSON(&in) {
		return
	}

	pet, err := pc.service.Create(actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resources.Pet(pet))
}

// Update edits a pet listing.
func (pc *PetController) Update(c *ctx.Context) {
	var in services.PetInput
	if !c.BindJSON(&in) {
		return
	}

	pet, err := pc.service.Update(actor(c), c.ParamUint("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// Destroy removes a pet listing.
func (pc *PetController) Destroy(c *ctx.Context) {
	if err := pc.service.Delete(actor(c), c.ParamUint("id")); err != nil {
		respondError(c, err)
		return
	}
	c.SuccessMessage("Pet deleted", nil)
}

// SetAvailability shows or hides a pet from sale.
func (pc *PetController) SetAvailability(c *ctx.Context) {
	var in struct {
		IsAvailable *bool `json:"is_available"`
	}
	if !c.BindJSON(&in) {
		return
	}
	if in.IsAvailable == nil {
		c.ValidationError(map[string]string{"is_available": "The is_available field is required."})
		return
	}

	pet, err := pc.service.SetAvailability(actor(c), c.ParamUint("id"), *in.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// Restock adds units to a pet's stock.
func (pc *PetController) Restock(c *ctx.Context) {
	var in services.StockAdjustInput
	if !c.BindJSON(&in) {
		return
	}

	pet, err := pc.service.IncreaseStock(actor(c), c.ParamUint("id"), in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// Reduce removes units from a pet's stock, refusing to go negative.
func (pc *PetController) Reduce(c *ctx.Context) {
	var in services.StockAdjustInput
	if !c.BindJSON(&in) {
		return
	}

	pet, err := pc.service.ReduceStock(actor(c), c.ParamUint("id"), in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// SetStock replaces a pet's stock with an absolute quantity.
func (pc *PetController) SetStock(c *ctx.Context) {
	var in services.StockSetInput
	if !c.BindJSON(&in) {
		return
	}

	pet, err := pc.service.SetStock(actor(c), c.ParamUint("id"), *in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Pet(pet))
}

// LowStock lists pets at or below their threshold.
func (pc *PetController) LowStock(c *ctx.Context) {
	pets, err := pc.service.LowStock(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(pets, resources.Pet))
}

// OutOfStock lists depleted pets.
func (pc *PetController) OutOfStock(c *ctx.Context) {
	pets, err := pc.service.OutOfStock(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(pets, resources.Pet))
}

// Summary returns the inventory dashboard numbers.
func (pc *PetController) Summary(c *ctx.Context) {
	summary, err := pc.service.Summary(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(summary)
}
