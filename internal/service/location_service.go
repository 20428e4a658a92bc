package service

import (
	"context"

	"github.com/google/uuid"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
)

type LocationService interface {
	Report(ctx context.Context, userID *uuid.UUID, input dto.ReportLocationInput) (*model.ClientLocation, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]model.ClientLocation, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) Report(ctx context.Context, userID *uuid.UUID, input dto.ReportLocationInput) (*model.ClientLocation, error) {
	source := input.Source
	if source == "" {
		source = "gps"
	}
	permission := input.Permission
	if permission == "" {
		permission = "granted"
	}

	location := &model.ClientLocation{
		UserID:     userID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Accuracy:   input.Accuracy,
		Source:     source,
		Permission: permission,
	}

	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

func (s *locationService) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.ClientLocation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
