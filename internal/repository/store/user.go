package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainUser "github.com/leaseflow/leaseflow/internal/domain/user"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type userRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(client postgres.IClient, logger *logger.Logger) domainUser.Repository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) Get(ctx context.Context, id string) (*domainUser.User, error) {
	var user domainUser.User
	err := r.client.Querier(ctx).
		Where("id = ? AND status != ?", id, types.StatusDeleted).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("user %s not found", id).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &user, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]*domainUser.User, error) {
	var users []*domainUser.User
	err := r.client.Querier(ctx).
		Where("role = ? AND status != ?", types.UserRoleAdmin, types.StatusDeleted).
		Find(&users).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list admin users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}
