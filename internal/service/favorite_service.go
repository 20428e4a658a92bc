package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*dto.FavoriteStatusResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) error
	Import(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (*dto.ImportFavoritesResponse, error)
}

type favoriteService struct {
	repo         repository.FavoriteRepository
	propertyRepo repository.PropertyRepository
	points       PointsService
	redisClient  *redis.Client
	logger       *zap.SugaredLogger
}

func NewFavoriteService(
	repo repository.FavoriteRepository,
	propertyRepo repository.PropertyRepository,
	points PointsService,
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
) FavoriteService {
	return &favoriteService{
		repo:         repo,
		propertyRepo: propertyRepo,
		points:       points,
		redisClient:  redisClient,
		logger:       logger,
	}
}

func (s *favoriteService) Toggle(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	favorited, err := s.repo.Toggle(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	// Keep the cached per-property count in step with the database.
	if s.redisClient != nil {
		key := "favorites:count:" + propertyID.String()
		delta := int64(-1)
		if favorited {
			delta = 1
		}
		if err := s.redisClient.IncrBy(ctx, key, delta).Err(); err != nil {
			s.logger.Warnw("favorite count cache update failed", "property_id", propertyID, "error", err)
		}
	}

	// The listing's agent earns points when someone favorites it.
	if favorited && property.AgentID != nil && *property.AgentID != userID {
		s.points.Award(ctx, *property.AgentID, model.ActivityFavoriteReceived, map[string]string{
			"property_id": propertyID.String(),
			"actor_id":    userID.String(),
		})
	}

	count, err := s.repo.CountByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Warnw("favorite count lookup failed", "property_id", propertyID, "error", err)
	}

	return &dto.FavoriteStatusResponse{PropertyID: propertyID, Favorited: favorited, Count: count}, nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *favoriteService) Remove(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, propertyID)
}

// Import merges a guest-side favorites list into the signed-in account.
// Unknown properties are skipped, duplicates are no-ops.
func (s *favoriteService) Import(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (*dto.ImportFavoritesResponse, error) {
	result := &dto.ImportFavoritesResponse{}

	for _, propertyID := range propertyIDs {
		if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		if err := s.repo.Add(ctx, userID, propertyID); err != nil {
			return nil, err
		}
		result.Imported++
	}

	return result, nil
}
