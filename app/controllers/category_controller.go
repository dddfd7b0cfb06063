package controllers

import (
	"github.com/tanakrit/pawmart/app/resources"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/resource"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{service: services.NewCategoryService()}
}

// Index lists all categories.
func (cc *CategoryController) Index(c *ctx.Context) {
	categories, err := cc.service.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(categories, resources.Category))
}

// Show returns one category.
func (cc *CategoryController) Show(c *ctx.Context) {
	category, err := cc.service.Get(c.ParamUint("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Category(category))
}

// Store creates a category.
func (cc *CategoryController) Store(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}

	category, err := cc.service.Create(actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resources.Category(category))
}

// Update edits a category.
func (cc *CategoryController) Update(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}

	category, err := cc.service.Update(actor(c), c.ParamUint("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.Category(category))
}

// Destroy deletes an empty category.
func (cc *CategoryController) Destroy(c *ctx.Context) {
	if err := cc.service.Delete(actor(c), c.ParamUint("id")); err != nil {
		respondError(c, err)
		return
	}
	c.SuccessMessage("Category deleted", nil)
}
