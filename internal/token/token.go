package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or
// scope checks. Callers map it to an authentication failure.
var ErrInvalidToken = errors.New("invalid token")

type Scope string

const (
	ScopeAccess  Scope = "access"
	ScopeRefresh Scope = "refresh"
)

// Claims is the signed claim set carried by both token kinds. Fresh marks an
// access token issued directly from a password login, as opposed to one minted
// through a refresh.
type Claims struct {
	Scope Scope `json:"scope"`
	Fresh bool  `json:"fresh"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 tokens with a process-wide secret injected at
// construction time.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token codec requires a signing secret")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) ttlFor(scope Scope) time.Duration {
	if scope == ScopeRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue produces a signed token for the subject with expiry = now + the TTL
// configured for the scope.
func (c *Codec) Issue(subject string, scope Scope, fresh bool) (string, error) {
	now := c.now()
	claims := Claims{
		Scope: scope,
		Fresh: fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttlFor(scope))),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and enforces that the token carries the
// expected scope. A refresh token presented where an access token is expected
// (or vice versa) is rejected.
func (c *Codec) Decode(tokenString string, want Scope) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Scope != want {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
