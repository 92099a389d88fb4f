package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneUser(user)
	r.nextID++
	created.ID = "id-" + user.Username
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, changes domain.ProfileChanges) error {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if changes.Avatar != nil {
			u.AvatarURL = *changes.Avatar
		}
		if changes.Nickname != nil {
			u.Nickname = *changes.Nickname
		}
		if changes.Bio != nil {
			u.Bio = *changes.Bio
		}
		return nil
	}
	return domain.ErrUserNotFound
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCodec(t), zerolog.Nop())

	user, err := svc.Register(context.Background(), "alice", "pw123", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pw123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.AvatarURL != domain.DefaultAvatarURL {
		t.Fatalf("expected default avatar, got %q", user.AvatarURL)
	}
	if user.Nickname != "Alice" {
		t.Fatalf("unexpected nickname: %q", user.Nickname)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCodec(t), zerolog.Nop())

	if _, err := svc.Register(context.Background(), "", "pw", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCodec(t), zerolog.Nop())

	_, _ = svc.Register(context.Background(), "bob", "pw", "")
	if _, err := svc.Register(context.Background(), "bob", "pw2", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	codec := newTestCodec(t)
	svc := NewAuthService(repo, codec, zerolog.Nop())

	created, err := svc.Register(context.Background(), "alice", "pw123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "alice", "pw123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token")
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	identity, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if identity.UserID != created.ID || identity.Username != "alice" {
		t.Fatalf("token identity mismatch: %+v", identity)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCodec(t), zerolog.Nop())

	_, _ = svc.Register(context.Background(), "dave", "goodpass", "")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCodec(t), zerolog.Nop())

	// unknown user must return the same error as a wrong password
	if _, _, err := svc.Login(context.Background(), "ghost", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
