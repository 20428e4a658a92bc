package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type InquiryService interface {
	Create(ctx context.Context, userID *uuid.UUID, input dto.CreateInquiryInput) (*model.Inquiry, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Inquiry, int64, error)
	ListByProperty(ctx context.Context, actorID, propertyID uuid.UUID) ([]model.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Inquiry, error)
}

type inquiryService struct {
	repo         repository.InquiryRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	points       PointsService
	redisClient  *redis.Client
	sanitizer    *bluemonday.Policy
	logger       *zap.SugaredLogger
}

func NewInquiryService(
	repo repository.InquiryRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	points PointsService,
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
) InquiryService {
	return &inquiryService{
		repo:         repo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		points:       points,
		redisClient:  redisClient,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger,
	}
}

func (s *inquiryService) Create(ctx context.Context, userID *uuid.UUID, input dto.CreateInquiryInput) (*model.Inquiry, error) {
	property, err := s.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// Authenticated senders get a per-user cooldown against spam.
	if userID != nil {
		allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, *userID, "inquiry", 30*time.Second)
		if err != nil {
			s.logger.Warnw("inquiry rate limit check failed", "error", err)
		} else if !allowed {
			return nil, rateLimitError(ctx, s.redisClient, *userID, "inquiry")
		}
	}

	inquiry := &model.Inquiry{
		PropertyID: input.PropertyID,
		UserID:     userID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    s.sanitizer.Sanitize(input.Message),
		Status:     model.InquiryStatusPending,
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if property.AgentID != nil {
		s.points.Award(ctx, *property.AgentID, model.ActivityInquiryReceived, map[string]string{
			"property_id": property.ID.String(),
			"inquiry_id":  inquiry.ID.String(),
		})
	}

	return inquiry, nil
}

func (s *inquiryService) List(ctx context.Context, status string, page, limit int) ([]model.Inquiry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.FindAll(ctx, status, page, limit)
}

// ListByProperty returns a listing's inquiries to its own agent or an
// admin. Other agents get forbidden, not an empty list.
func (s *inquiryService) ListByProperty(ctx context.Context, actorID, propertyID uuid.UUID) ([]model.Inquiry, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID.String())
	if err != nil {
		return nil, err
	}

	if actor.Role.Name != model.RoleAdmin {
		if property.AgentID == nil || *property.AgentID != actorID {
			return nil, apperror.ErrForbidden
		}
	}

	return s.repo.FindByProperty(ctx, propertyID)
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Inquiry, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
