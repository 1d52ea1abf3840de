package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims of an API token. Subject is the user id, ID identifies the redis session.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) SessionID() string {
	return c.ID
}

// TokenManager signs and verifies HS256 API tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// injectable for tests
	NewSessionID func() string
	Now          func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret not set")
	}
	return &TokenManager{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		NewSessionID: uuid.NewString,
		Now:          time.Now,
	}, nil
}

// Issue returns a signed token for uid and the session id it carries.
func (m *TokenManager) Issue(uid string, issuedAt time.Time) (token, sessionID string, err error) {
	if uid == "" {
		return "", "", errors.New("issue token: empty user id")
	}

	sessionID = m.NewSessionID()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   uid,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return token, sessionID, nil
}

// Parse verifies signature, issuer and expiry of token.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
