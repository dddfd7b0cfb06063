package controllers

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/resources"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/resource"
)

type UserController struct {
	service *services.UserService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewUserService()}
}

// Index lists all accounts: ?page=, ?limit=.
func (uc *UserController) Index(c *ctx.Context) {
	page, limit := c.Page()

	users, pagination, err := uc.service.List(actor(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(resource.Collection(users, resources.User), pagination)
}

// UpdateRole reassigns an account's role.
func (uc *UserController) UpdateRole(c *ctx.Context) {
	var in services.ChangeRoleInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.service.ChangeRole(actor(c), c.ParamUint("id"), models.Role(in.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.User(user))
}
