package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientLocation is a standalone geolocation audit log. Nothing cascades
// from it.
type ClientLocation struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Latitude   Coordinate `gorm:"size:20;not null" json:"latitude"`
	Longitude  Coordinate `gorm:"size:20;not null" json:"longitude"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	Source     string     `gorm:"size:20;not null;default:'gps'" json:"source"` // 'gps', 'ip', 'manual'
	Permission string     `gorm:"size:20;not null;default:'granted'" json:"permission"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (l *ClientLocation) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
