package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"aimrealty.com/estateapi/internal/repository"
)

const viewBufferKey = "property:views:buffer"

// ViewService flushes redis-buffered property view counts to the database
// so detail reads stay write-free on the hot path.
type ViewService interface {
	StartViewSyncWorker(ctx context.Context)
	FlushViews(ctx context.Context) error
}

type viewService struct {
	redisClient  *redis.Client
	propertyRepo repository.PropertyRepository
	interval     time.Duration
	logger       *zap.SugaredLogger
}

func NewViewService(redisClient *redis.Client, propertyRepo repository.PropertyRepository, logger *zap.SugaredLogger) ViewService {
	return &viewService{
		redisClient:  redisClient,
		propertyRepo: propertyRepo,
		interval:     time.Minute,
		logger:       logger,
	}
}

func (s *viewService) StartViewSyncWorker(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.FlushViews(ctx); err != nil {
				s.logger.Warnw("view flush failed", "error", err)
			}
		}
	}
}

func (s *viewService) FlushViews(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}

	counts, err := s.redisClient.HGetAll(ctx, viewBufferKey).Result()
	if err != nil {
		return err
	}

	for idStr, countStr := range counts {
		id, err := uuid.Parse(idStr)
		if err != nil {
			s.redisClient.HDel(ctx, viewBufferKey, idStr)
			continue
		}

		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			s.redisClient.HDel(ctx, viewBufferKey, idStr)
			continue
		}

		if err := s.propertyRepo.IncrementViews(ctx, id, count); err != nil {
			s.logger.Warnw("failed to persist views", "property_id", idStr, "error", err)
			continue
		}

		s.redisClient.HDel(ctx, viewBufferKey, idStr)
	}

	return nil
}
