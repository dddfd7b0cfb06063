package controllers

import (
	"github.com/tanakrit/pawmart/app/resources"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/ctx"
	"github.com/tanakrit/pawmart/pkg/resource"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register creates an account and signs the user in.
func (ac *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, tokens, err := ac.service.Register(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Created(resource.Map{
		"user":   resources.User(user),
		"tokens": tokens,
	})
}

// Login authenticates by username or email.
func (ac *AuthController) Login(c *ctx.Context) {
	var in struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	user, tokens, err := ac.service.Login(in.Identifier, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Success(resource.Map{
		"user":   resources.User(user),
		"tokens": tokens,
	})
}

// Refresh exchanges a refresh token for a new pair.
func (ac *AuthController) Refresh(c *ctx.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	tokens, err := ac.service.Refresh(in.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Success(tokens)
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c *ctx.Context) {
	user, err := ac.service.Profile(actor(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resources.User(user))
}
