package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
)

type SearchService interface {
	Search(ctx context.Context, userID *uuid.UUID, query dto.SearchQuery) (*dto.SearchResponse, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error)
}

type searchService struct {
	meili        MeiliSearchService
	propertyRepo repository.PropertyRepository
	historyRepo  repository.SearchRepository
	logger       *zap.SugaredLogger
}

func NewSearchService(
	meili MeiliSearchService,
	propertyRepo repository.PropertyRepository,
	historyRepo repository.SearchRepository,
	logger *zap.SugaredLogger,
) SearchService {
	return &searchService{
		meili:        meili,
		propertyRepo: propertyRepo,
		historyRepo:  historyRepo,
		logger:       logger,
	}
}

func (s *searchService) Search(ctx context.Context, userID *uuid.UUID, query dto.SearchQuery) (*dto.SearchResponse, error) {
	filter := map[string]string{
		"language":     query.Language,
		"listing_type": query.ListingType,
		"city":         query.City,
	}

	ids, total, err := s.meili.Search(query.Query, filter, query.Limit)
	if err != nil {
		return nil, err
	}

	results := make([]model.Property, 0, len(ids))
	for _, idStr := range ids {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		property, err := s.propertyRepo.FindByID(ctx, id)
		if err != nil {
			// Index can lag a hard delete; skip the stale hit.
			continue
		}
		results = append(results, *property)
	}

	s.recordHistory(ctx, userID, query, int(total))

	return &dto.SearchResponse{
		Query:   query.Query,
		Results: results,
		Total:   total,
	}, nil
}

// recordHistory is best effort; search results never fail on a history
// write error.
func (s *searchService) recordHistory(ctx context.Context, userID *uuid.UUID, query dto.SearchQuery, results int) {
	language := query.Language
	if language == "" {
		language = model.LangEnglish
	}

	history := &model.SearchHistory{
		UserID:   userID,
		Query:    query.Query,
		Results:  results,
		Language: language,
	}

	filters := map[string]string{
		"listing_type": query.ListingType,
		"city":         query.City,
	}

	if err := s.historyRepo.Record(ctx, history, filters); err != nil {
		s.logger.Warnw("failed to record search history", "query", query.Query, "error", err)
	}
}

func (s *searchService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.historyRepo.ListRecent(ctx, userID, limit)
}
