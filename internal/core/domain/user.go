package domain

import (
	"errors"
	"time"
)

// DefaultAvatarURL is assigned at registration until the user uploads
// an avatar of their own.
const DefaultAvatarURL = "/uploads/profile.png"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. Username is immutable after
// creation; nickname, avatar and bio change only through profile
// updates.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Nickname     string    `json:"nickname,omitempty"`
	AvatarURL    string    `json:"avatar_url"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileChanges is the field-set produced by the profile update
// merger. A nil pointer means "leave the stored value untouched"; all
// non-nil fields are applied in a single partial update.
type ProfileChanges struct {
	Avatar   *string
	Nickname *string
	Bio      *string
}

// Empty reports whether the change-set would write nothing.
func (c ProfileChanges) Empty() bool {
	return c.Avatar == nil && c.Nickname == nil && c.Bio == nil
}
