package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity types that award customer points.
const (
	ActivityPropertyListed   = "property_listed"
	ActivityFavoriteReceived = "favorite_received"
	ActivityInquiryReceived  = "inquiry_received"
	ActivitySearchPerformed  = "search_performed"
)

type CustomerActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_user_date,priority:1" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ActivityType string    `gorm:"size:50;not null" json:"activity_type"`
	Points       int       `gorm:"not null" json:"points"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_activity_user_date,priority:2" json:"created_at"`

	Metadata []ActivityMetadata `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"metadata,omitempty"`
}

func (a *CustomerActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

type ActivityMetadata struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	MetaKey    string    `gorm:"size:50;not null" json:"meta_key"`
	MetaValue  string    `gorm:"size:255;not null" json:"meta_value"`
}

// CustomerPoints is a one-to-one aggregate per user.
type CustomerPoints struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TotalPoints   int       `gorm:"default:0" json:"total_points"`
	CurrentLevel  string    `gorm:"size:20;not null;default:'bronze'" json:"current_level"`
	LastUpdatedAt time.Time `gorm:"autoUpdateTime" json:"last_updated_at"`
}
