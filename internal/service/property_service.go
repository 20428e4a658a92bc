package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
	"aimrealty.com/estateapi/pkg/storage"
)

type PropertyService interface {
	Create(ctx context.Context, agentID uuid.UUID, input dto.CreatePropertyInput) (*model.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	GetBySlug(ctx context.Context, slug string) (*model.Property, error)
	List(ctx context.Context, filter dto.PropertyFilter) (*dto.PaginatedPropertyResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input dto.UpdatePropertyInput) (*model.Property, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	AttachImage(ctx context.Context, propertyID uuid.UUID, imageURL string, sortOrder int) error
}

type propertyService struct {
	repo         repository.PropertyRepository
	userRepo     repository.UserRepository
	waveRepo     repository.WaveRepository
	points       PointsService
	search       MeiliSearchService
	imageStorage storage.ImageStorage
	redisClient  *redis.Client
	sanitizer    *bluemonday.Policy
	logger       *zap.SugaredLogger
}

func NewPropertyService(
	repo repository.PropertyRepository,
	userRepo repository.UserRepository,
	waveRepo repository.WaveRepository,
	points PointsService,
	search MeiliSearchService,
	imageStorage storage.ImageStorage,
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
) PropertyService {
	return &propertyService{
		repo:         repo,
		userRepo:     userRepo,
		waveRepo:     waveRepo,
		points:       points,
		search:       search,
		imageStorage: imageStorage,
		redisClient:  redisClient,
		sanitizer:    bluemonday.UGCPolicy(),
		logger:       logger,
	}
}

func (s *propertyService) Create(ctx context.Context, agentID uuid.UUID, input dto.CreatePropertyInput) (*model.Property, error) {
	agent, err := s.userRepo.FindByID(ctx, agentID.String())
	if err != nil {
		return nil, err
	}

	if input.WaveID != nil {
		if err := s.checkWaveQuota(ctx, agent, *input.WaveID); err != nil {
			return nil, err
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	language := input.Language
	if language == "" {
		language = model.LangEnglish
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	property := &model.Property{
		Title:       input.Title,
		Description: s.sanitizer.Sanitize(input.Description),
		Type:        input.Type,
		ListingType: input.ListingType,
		Price:       input.Price,
		Currency:    currency,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		Area:        input.Area,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
		Status:      model.PropertyStatusActive,
		Language:    language,
		Slug:        &slug,
		AgentID:     &agentID,
		WaveID:      input.WaveID,
	}
	if input.Latitude != nil {
		property.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		property.Longitude = *input.Longitude
	}

	if err := s.repo.Create(ctx, property, input.Images, input.Amenities, input.Features); err != nil {
		return nil, err
	}

	if input.WaveID != nil {
		if err := s.waveRepo.AdjustUsed(ctx, agentID, *input.WaveID, 1); err != nil {
			s.logger.Errorw("failed to bump wave usage", "property_id", property.ID, "error", err)
		}
	}

	created, err := s.repo.FindByID(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	s.points.Award(ctx, agentID, model.ActivityPropertyListed, map[string]string{
		"property_id": property.ID.String(),
	})

	go func() {
		if err := s.search.IndexProperty(created); err != nil {
			s.logger.Errorw("failed to index property", "property_id", created.ID, "error", err)
		}
	}()

	return created, nil
}

// checkWaveQuota enforces usedProperties < maxProperties before a listing
// is accepted. Admins bypass the quota.
func (s *propertyService) checkWaveQuota(ctx context.Context, agent *model.User, waveID uuid.UUID) error {
	if agent.Role.Name == model.RoleAdmin {
		return nil
	}

	perm, err := s.waveRepo.FindPermission(ctx, agent.ID, waveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrForbidden
		}
		return err
	}

	if perm.UsedProperties >= perm.MaxProperties {
		return apperror.ErrQuotaExceeded
	}

	return nil
}

func (s *propertyService) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	s.countView(ctx, property.ID)
	return property, nil
}

func (s *propertyService) GetBySlug(ctx context.Context, slug string) (*model.Property, error) {
	property, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	s.countView(ctx, property.ID)
	return property, nil
}

// countView buffers view counts in redis; the view sync worker flushes them
// to the database.
func (s *propertyService) countView(ctx context.Context, id uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.HIncrBy(ctx, viewBufferKey, id.String(), 1).Err(); err != nil {
		s.logger.Warnw("failed to buffer property view", "property_id", id, "error", err)
	}
}

func (s *propertyService) List(ctx context.Context, filter dto.PropertyFilter) (*dto.PaginatedPropertyResponse, error) {
	properties, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &dto.PaginatedPropertyResponse{
		Data: properties,
		Meta: dto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *propertyService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input dto.UpdatePropertyInput) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, actorID, property); err != nil {
		return nil, err
	}

	applyPropertyUpdate(property, input, s.sanitizer)

	if err := s.repo.Update(ctx, property, input.Amenities, input.Features); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.search.IndexProperty(updated); err != nil {
			s.logger.Errorw("failed to reindex property", "property_id", id, "error", err)
		}
	}()

	return updated, nil
}

// applyPropertyUpdate copies whichever optional fields are present. The
// slug never changes after creation: property URLs stay canonical.
func applyPropertyUpdate(property *model.Property, input dto.UpdatePropertyInput, sanitizer *bluemonday.Policy) {
	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = sanitizer.Sanitize(*input.Description)
	}
	if input.Type != nil {
		property.Type = *input.Type
	}
	if input.ListingType != nil {
		property.ListingType = *input.ListingType
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.Currency != nil {
		property.Currency = *input.Currency
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.Area != nil {
		property.Area = *input.Area
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.Country != nil {
		property.Country = *input.Country
	}
	if input.Latitude != nil {
		property.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		property.Longitude = *input.Longitude
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
	if input.Language != nil {
		property.Language = *input.Language
	}
}

func (s *propertyService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.authorize(ctx, actorID, property); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if property.AgentID != nil && property.WaveID != nil {
		if err := s.waveRepo.AdjustUsed(ctx, *property.AgentID, *property.WaveID, -1); err != nil {
			s.logger.Errorw("failed to release wave usage", "property_id", id, "error", err)
		}
	}

	s.deleteStoredImages(ctx, property)

	go func() {
		if err := s.search.DeleteProperty(id.String()); err != nil {
			s.logger.Errorw("failed to remove property from index", "property_id", id, "error", err)
		}
	}()

	return nil
}

// deleteStoredImages removes the listing's photos from external storage.
// The database rows are already gone at this point, so failures are only
// logged; a leaked asset must not roll back the deletion.
func (s *propertyService) deleteStoredImages(ctx context.Context, property *model.Property) {
	if s.imageStorage == nil {
		return
	}

	for _, img := range property.Images {
		if img.ImageURL == "" {
			continue
		}
		if err := s.imageStorage.DeleteImage(ctx, img.ImageURL); err != nil {
			s.logger.Errorw("failed to delete stored image",
				"property_id", property.ID, "image_url", img.ImageURL, "error", err)
		}
	}
}

func (s *propertyService) AttachImage(ctx context.Context, propertyID uuid.UUID, imageURL string, sortOrder int) error {
	image := &model.PropertyImage{
		PropertyID: propertyID,
		ImageURL:   imageURL,
		SortOrder:  sortOrder,
	}
	return s.repo.AddImage(ctx, image)
}

func (s *propertyService) authorize(ctx context.Context, actorID uuid.UUID, property *model.Property) error {
	actor, err := s.userRepo.FindByID(ctx, actorID.String())
	if err != nil {
		return err
	}

	if actor.Role.Name == model.RoleAdmin {
		return nil
	}
	if property.AgentID != nil && *property.AgentID == actorID {
		return nil
	}

	return apperror.ErrForbidden
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)

func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Trim(slug, "-")
}

func (s *propertyService) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		slug = "listing"
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}

	return slug, nil
}
