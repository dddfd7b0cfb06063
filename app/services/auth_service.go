package services

import (
	"errors"

	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/pkg/auth"
	"gorm.io/gorm"
)

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username             string `json:"username" validate:"required,min=3,max=50"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	FirstName            string `json:"first_name" validate:"nullable,max=100"`
	LastName             string `json:"last_name" validate:"nullable,max=100"`
	Phone                string `json:"phone" validate:"nullable,max=30"`
	Role                 string `json:"role" validate:"nullable,in=customer,seller"`
}

// TokenPair is what a successful login or registration returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a new account. Anyone may self-register as a customer
// or a seller; admin accounts are seeded, never self-registered.
func (s *AuthService) Register(in RegisterInput) (models.User, TokenPair, error) {
	if s.users.UsernameTaken(in.Username) {
		return models.User{}, TokenPair{}, ErrUsernameTaken
	}
	if s.users.EmailTaken(in.Email) {
		return models.User{}, TokenPair{}, ErrEmailTaken
	}

	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() || role == models.RoleAdmin {
		return models.User{}, TokenPair{}, ErrPermissionDenied
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      role,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(user)
	return user, pair, err
}

// Login authenticates by username or email plus password.
func (s *AuthService) Login(identifier, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByUsername(identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.users.FindByEmail(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	return user, pair, err
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return TokenPair{}, wrapNotFound(err)
	}

	return s.issueTokens(user)
}

// Profile returns the account behind an authenticated request.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	return user, wrapNotFound(err)
}

func (s *AuthService) issueTokens(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
