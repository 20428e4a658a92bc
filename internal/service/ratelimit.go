package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"aimrealty.com/estateapi/pkg/apperror"
)

func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
	return rdb.TTL(ctx, key).Result()
}

// rateLimitError builds the rejection returned to a rate-limited user,
// including how long is left on the cooldown when redis can tell us.
func rateLimitError(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) error {
	ttl, err := GetRateLimitTTL(ctx, rdb, userID, action)
	if err != nil {
		return apperror.ErrRateLimitExceeded
	}
	return rateLimitExceededAfter(ttl)
}

func rateLimitExceededAfter(ttl time.Duration) error {
	if ttl <= 0 {
		return apperror.ErrRateLimitExceeded
	}
	seconds := int((ttl + time.Second - 1) / time.Second)
	return fmt.Errorf("%w: try again in %d seconds", apperror.ErrRateLimitExceeded, seconds)
}
