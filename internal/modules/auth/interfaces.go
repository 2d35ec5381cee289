package auth

import (
	"context"

	"lablend/internal/domain"
)

// UserRepositoryInterface abstracts user persistence for testing
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
