package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile applies the non-nil fields of changes as one atomic
	// partial update on the user document.
	UpdateProfile(ctx context.Context, id string, changes domain.ProfileChanges) error
}
