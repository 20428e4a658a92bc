package dto

import "github.com/google/uuid"

type CreateWaveInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateWaveInput struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type GrantWavePermissionInput struct {
	UserID        uuid.UUID `json:"user_id" binding:"required"`
	WaveID        uuid.UUID `json:"wave_id" binding:"required"`
	MaxProperties int       `json:"max_properties" binding:"required,min=1"`
}
