package services

import (
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/pkg/logger"
	"github.com/tanakrit/pawmart/pkg/orm"
)

// ChangeRoleInput is the payload for reassigning an account's role.
type ChangeRoleInput struct {
	Role string `json:"role" validate:"required,in=customer,seller,admin"`
}

// UserService handles account administration. Self-service profile reads
// live in AuthService; everything here is admin territory.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns one page of all accounts.
func (s *UserService) List(actor authz.Actor, page, limit int) ([]models.User, orm.Pagination, error) {
	if !actor.CanManageUsers() {
		return nil, orm.Pagination{}, ErrPermissionDenied
	}
	return s.users.All(page, limit)
}

// ChangeRole reassigns a user's role. Admins cannot change their own
// role; demoting yourself takes another admin.
func (s *UserService) ChangeRole(actor authz.Actor, id uint, role models.Role) (models.User, error) {
	if !actor.CanManageUsers() {
		return models.User{}, ErrPermissionDenied
	}
	if !role.Valid() {
		return models.User{}, ErrInvalidRole
	}
	if id == actor.ID {
		return models.User{}, ErrPermissionDenied
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, wrapNotFound(err)
	}

	user.Role = role
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}

	logger.Info("role changed", "user_id", user.ID, "role", string(role), "by", actor.ID)
	return user, nil
}
