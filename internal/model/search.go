package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Query     string     `gorm:"size:255;not null" json:"query"`
	Results   int        `gorm:"default:0" json:"results"`
	Language  string     `gorm:"size:5;default:'en'" json:"language"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Filters []SearchFilter `gorm:"foreignKey:SearchID;constraint:OnDelete:CASCADE" json:"filters,omitempty"`
}

func (s *SearchHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type SearchFilter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SearchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"search_id"`
	FilterKey   string    `gorm:"size:50;not null" json:"filter_key"`
	FilterValue string    `gorm:"size:255;not null" json:"filter_value"`
}
