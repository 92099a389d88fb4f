package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// ProfileUpdateInput carries the partial profile fields of one update
// request. Empty strings mean "not supplied".
type ProfileUpdateInput struct {
	AvatarPath string
	Nickname   string
	Bio        string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error)
}
