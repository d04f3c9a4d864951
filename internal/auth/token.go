package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every reason a bearer token is rejected: bad
// encoding, wrong algorithm, signature mismatch, wrong issuer or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated subject carried by a token.
type Identity struct {
	UserID   string
	Username string
}

// Claims are the signed contents of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Identity returns the subject of the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.Subject, Username: c.Username}
}

// Token is a freshly minted access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	TTL         time.Duration
}

type TokenIssuer interface {
	Issue(identity Identity) (*Token, error)
}

type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// TokenManager signs and verifies HS256 JWTs with a process-wide key.
type TokenManager struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

func NewTokenManager(signingKey []byte, issuer string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		signingKey: signingKey,
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TokenManager) Issue(identity Identity) (*Token, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: identity.Username,
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		TTL:         m.ttl,
	}, nil
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
