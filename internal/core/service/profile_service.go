package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

// fieldPolicy names how a profile field treats an absent input value.
type fieldPolicy int

const (
	// keepCurrent leaves the stored value untouched when no new value
	// is supplied.
	keepCurrent fieldPolicy = iota
	// resetToEmpty clears the stored value when no new value is
	// supplied.
	resetToEmpty
)

// Per-field merge policies. Bio is resetToEmpty: every profile update
// clears it unless a new value arrives. That asymmetry is intentional
// here only in the sense that it matches observed product behaviour;
// it is awaiting product clarification.
const (
	avatarPolicy   = keepCurrent
	nicknamePolicy = keepCurrent
	bioPolicy      = resetToEmpty
)

// MergeProfile computes the field-set to persist from one partial
// update. The result is applied as a single atomic write, so a profile
// edit is never half-visible.
func MergeProfile(input ports.ProfileUpdateInput) domain.ProfileChanges {
	return domain.ProfileChanges{
		Avatar:   mergeField(avatarPolicy, input.AvatarPath),
		Nickname: mergeField(nicknamePolicy, input.Nickname),
		Bio:      mergeField(bioPolicy, input.Bio),
	}
}

// mergeField turns one input value into a write decision: nil means
// the stored value stays as it is.
func mergeField(policy fieldPolicy, value string) *string {
	if value != "" {
		return &value
	}
	if policy == resetToEmpty {
		empty := ""
		return &empty
	}
	return nil
}

// ProfileService loads and updates the authenticated user's profile.
type ProfileService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, input ports.ProfileUpdateInput) (*domain.User, error) {
	changes := MergeProfile(input)
	if err := s.users.UpdateProfile(ctx, userID, changes); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Bool("avatar", changes.Avatar != nil).
		Bool("nickname", changes.Nickname != nil).
		Msg("profile updated")

	return s.users.FindByID(ctx, userID)
}
