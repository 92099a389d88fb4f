package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, nickname string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token
	// alongside the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
