package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
)

// Level thresholds based on total accumulated points. Levels never demote.
const (
	PointsPlatinum = 2000
	PointsGold     = 500
	PointsSilver   = 100
	PointsBronze   = 0
)

const (
	LevelPlatinum = "platinum"
	LevelGold     = "gold"
	LevelSilver   = "silver"
	LevelBronze   = "bronze"
)

// Points awarded per activity type.
var activityPoints = map[string]int{
	model.ActivityPropertyListed:   50,
	model.ActivityFavoriteReceived: 10,
	model.ActivityInquiryReceived:  20,
	model.ActivitySearchPerformed:  1,
}

type PointsService interface {
	// Award records an activity for the user. Failures are logged, never
	// surfaced: gamification must not break the triggering request.
	Award(ctx context.Context, userID uuid.UUID, activityType string, metadata map[string]string)
	Status(ctx context.Context, userID uuid.UUID) (*dto.PointsStatus, error)
	Activities(ctx context.Context, userID uuid.UUID, limit int) ([]model.CustomerActivity, error)
}

type pointsService struct {
	repo   repository.PointsRepository
	logger *zap.SugaredLogger
}

func NewPointsService(repo repository.PointsRepository, logger *zap.SugaredLogger) PointsService {
	return &pointsService{repo: repo, logger: logger}
}

func (s *pointsService) Award(ctx context.Context, userID uuid.UUID, activityType string, metadata map[string]string) {
	points, ok := activityPoints[activityType]
	if !ok {
		s.logger.Warnw("unknown activity type", "activity_type", activityType)
		return
	}

	activity := &model.CustomerActivity{
		UserID:       userID,
		ActivityType: activityType,
		Points:       points,
	}

	if err := s.repo.RecordActivity(ctx, activity, metadata, LevelForPoints); err != nil {
		s.logger.Errorw("failed to record activity", "user_id", userID, "activity_type", activityType, "error", err)
	}
}

func (s *pointsService) Status(ctx context.Context, userID uuid.UUID) (*dto.PointsStatus, error) {
	points, err := s.repo.GetPoints(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No activity yet: fresh bronze status.
			points = &model.CustomerPoints{UserID: userID, CurrentLevel: LevelBronze}
		} else {
			return nil, err
		}
	}

	return buildPointsStatus(points.TotalPoints), nil
}

func (s *pointsService) Activities(ctx context.Context, userID uuid.UUID, limit int) ([]model.CustomerActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListActivities(ctx, userID, limit)
}

// LevelForPoints maps a total to its level name.
func LevelForPoints(total int) string {
	switch {
	case total >= PointsPlatinum:
		return LevelPlatinum
	case total >= PointsGold:
		return LevelGold
	case total >= PointsSilver:
		return LevelSilver
	default:
		return LevelBronze
	}
}

func buildPointsStatus(total int) *dto.PointsStatus {
	status := &dto.PointsStatus{
		TotalPoints:  total,
		CurrentLevel: LevelForPoints(total),
	}

	var floor, target int
	switch status.CurrentLevel {
	case LevelPlatinum:
		status.NextLevel = "max"
		status.TargetPoints = PointsPlatinum
		status.Progress = 100
		return status
	case LevelGold:
		floor, target = PointsGold, PointsPlatinum
		status.NextLevel = LevelPlatinum
	case LevelSilver:
		floor, target = PointsSilver, PointsGold
		status.NextLevel = LevelGold
	default:
		floor, target = PointsBronze, PointsSilver
		status.NextLevel = LevelSilver
	}

	status.TargetPoints = target
	status.Progress = math.Round(float64(total-floor)/float64(target-floor)*10000) / 100

	return status
}
