package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitforge/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

var ErrSessionExpired = errors.New("session expired")

type LoginChecker struct {
	ttl         time.Duration
	tokens      *TokenManager
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, tokens *TokenManager, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		tokens:      tokens,
		redisClient: redisClient,
	}
}

// UserID returns the id of the user owning token. The token must be valid and
// its session still present in redis and younger than the TTL.
func (c *LoginChecker) UserID(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "loginChecker.userId")
	defer tracing.EndSpanWithErrCheck(span, &err)

	claims, err := c.tokens.Parse(token)
	if err != nil {
		return "", err
	}

	createdAt, err := sessionCreatedAt(ctx, c.redisClient, claims.SessionID())
	if err != nil {
		return "", err
	}
	if time.Since(createdAt) > c.ttl {
		return "", ErrSessionExpired
	}

	return claims.UserID(), nil
}
