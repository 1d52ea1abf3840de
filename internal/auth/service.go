package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitforge/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitforge-session||"
	sessionsSetKey   = "fitforge-sessions"
)

var ErrSessionNotFound = errors.New("session not found")

type Service struct {
	redisClient *redis.Client
	tokens      *TokenManager
	ttl         time.Duration
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
	tokens *TokenManager,
) *Service {
	return &Service{
		ttl:         ttl,
		redisClient: redisClient,
		tokens:      tokens,
	}
}

// Login opens an API session for an already verified user and returns its token.
func (as *Service) Login(ctx context.Context, uid string, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer tracing.EndSpanWithErrCheck(span, &err)

	token, sessionID, err := as.tokens.Issue(uid, createdAt)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + sessionID
	cmdSet := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), 0)
	if err := cmdSet.Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	// add session to the set of live sessions
	cmdSAdd := as.redisClient.SAdd(ctx, sessionsSetKey, sessionID)
	if err := cmdSAdd.Err(); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}

	return token, nil
}

// Logout removes the session behind token. It returns false if the session was
// already gone.
func (as *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.logout")
	defer tracing.EndSpanWithErrCheck(span, &err)

	claims, err := as.tokens.Parse(token)
	if err != nil {
		return false, err
	}

	sessionID := claims.SessionID()
	cmdDel := as.redisClient.Del(ctx, sessionKeyPrefix+sessionID)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove session from the set of live sessions
	cmdSRem := as.redisClient.SRem(ctx, sessionsSetKey, sessionID)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return cmdDel.Val() > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, sessionsSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionIDs := cmd.Val()
	if len(sessionIDs) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Infof("=> auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, sessionID := range sessionIDs {
		createdAt, err := sessionCreatedAt(ctx, as.redisClient, sessionID)
		if errors.Is(err, ErrSessionNotFound) {
			// key already gone, only the set entry is left
			toRemove = append(toRemove, sessionID)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		if time.Since(createdAt) > as.ttl {
			log.Debugf("=>\twill clean the session: %s", sessionID)
			toRemove = append(toRemove, sessionID)
		}
	}

	for _, sessionID := range toRemove {
		cmdDel := as.redisClient.Del(ctx, sessionKeyPrefix+sessionID)
		if err := cmdDel.Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}

		cmdSRem := as.redisClient.SRem(ctx, sessionsSetKey, sessionID)
		if err := cmdSRem.Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}
	}
	log.Infof("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}

func sessionCreatedAt(ctx context.Context, redisClient *redis.Client, sessionID string) (time.Time, error) {
	cmd := redisClient.Get(ctx, sessionKeyPrefix+sessionID)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, ErrSessionNotFound
		}
		return time.Time{}, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session created at: %w", err)
	}
	return time.Unix(createdAtUnix, 0), nil
}
