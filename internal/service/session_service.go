package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCookieName is the HttpOnly cookie carrying the opaque session ID.
// The browser never sees a token it could hand to script.
const SessionCookieName = "aim_session"

type SessionStore interface {
	// Create opens a session for the user and returns the opaque session ID.
	Create(ctx context.Context, userID string) (string, error)
	// Get resolves a session ID to a user ID. Returns "" when the session
	// does not exist; that is not an error.
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	ttl := 72 * time.Hour
	if hoursStr := os.Getenv("SESSION_TTL_HOURS"); hoursStr != "" {
		if hours, err := strconv.Atoi(hoursStr); err == nil {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *redisSessionStore) Create(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, sessionKey(sessionID), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session in redis: %w", err)
	}

	return sessionID, nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *redisSessionStore) TTL() time.Duration {
	return s.ttl
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
