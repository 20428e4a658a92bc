package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type WaveService interface {
	Create(ctx context.Context, createdBy uuid.UUID, input dto.CreateWaveInput) (*model.Wave, error)
	List(ctx context.Context, activeOnly bool) ([]model.Wave, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateWaveInput) (*model.Wave, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GrantPermission(ctx context.Context, input dto.GrantWavePermissionInput) (*model.CustomerWavePermission, error)
	Permission(ctx context.Context, userID, waveID uuid.UUID) (*model.CustomerWavePermission, error)
}

type waveService struct {
	repo     repository.WaveRepository
	userRepo repository.UserRepository
}

func NewWaveService(repo repository.WaveRepository, userRepo repository.UserRepository) WaveService {
	return &waveService{repo: repo, userRepo: userRepo}
}

func (s *waveService) Create(ctx context.Context, createdBy uuid.UUID, input dto.CreateWaveInput) (*model.Wave, error) {
	wave := &model.Wave{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
		CreatedBy:   &createdBy,
	}

	if err := s.repo.Create(ctx, wave); err != nil {
		return nil, err
	}

	return wave, nil
}

func (s *waveService) List(ctx context.Context, activeOnly bool) ([]model.Wave, error) {
	return s.repo.FindAll(ctx, activeOnly)
}

func (s *waveService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateWaveInput) (*model.Wave, error) {
	wave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		wave.Name = *input.Name
	}
	if input.Description != nil {
		wave.Description = *input.Description
	}
	if input.IsActive != nil {
		wave.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, wave); err != nil {
		return nil, err
	}

	return wave, nil
}

func (s *waveService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *waveService) GrantPermission(ctx context.Context, input dto.GrantWavePermissionInput) (*model.CustomerWavePermission, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, input.WaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	perm := &model.CustomerWavePermission{
		UserID:        input.UserID,
		WaveID:        input.WaveID,
		MaxProperties: input.MaxProperties,
	}

	if err := s.repo.GrantPermission(ctx, perm); err != nil {
		return nil, err
	}

	return s.repo.FindPermission(ctx, input.UserID, input.WaveID)
}

func (s *waveService) Permission(ctx context.Context, userID, waveID uuid.UUID) (*model.CustomerWavePermission, error) {
	perm, err := s.repo.FindPermission(ctx, userID, waveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return perm, nil
}
