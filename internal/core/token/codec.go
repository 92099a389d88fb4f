// Package token issues and verifies the signed session tokens carried
// in the auth cookie. Tokens are HS256-signed and time-limited; there
// is no server-side revocation, expiry is the only invalidation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = time.Hour

var ErrExpired = errors.New("token expired")
var ErrInvalid = errors.New("token invalid")

// Identity is the resolved subject of a verified token.
type Identity struct {
	UserID   string
	Username string
}

type claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// Codec binds the process-wide signing secret and token lifetime.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec fails when the secret is empty so a misconfigured process
// refuses to start instead of minting unverifiable tokens.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a token asserting {userID, username} with an absolute
// expiry of now + ttl.
func (c *Codec) Issue(userID, username string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID:   userID,
		Username: username,
	})
	return t.SignedString(c.secret)
}

// Verify checks signature, structure and expiry. ErrExpired is only
// reported for tokens that are otherwise authentic; any signature or
// structure failure is ErrInvalid.
func (c *Codec) Verify(raw string) (Identity, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalid
	}
	if !t.Valid {
		return Identity{}, ErrInvalid
	}
	return Identity{UserID: cl.UserID, Username: cl.Username}, nil
}
