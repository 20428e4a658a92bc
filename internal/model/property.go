package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

const (
	PropertyStatusActive  = "active"
	PropertyStatusPending = "pending"
	PropertyStatusSold    = "sold"
	PropertyStatusRented  = "rented"
)

type Property struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Type        string          `gorm:"size:50;not null" json:"type"`         // 'house', 'apartment', 'land', 'commercial'
	ListingType string          `gorm:"size:10;not null" json:"listing_type"` // 'sale', 'rent'
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	Currency    string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Bedrooms    int             `gorm:"default:0" json:"bedrooms"`
	Bathrooms   int             `gorm:"default:0" json:"bathrooms"`
	Area        int             `gorm:"default:0" json:"area"`
	Address     string          `gorm:"size:255" json:"address"`
	City        string          `gorm:"size:100;index" json:"city"`
	Country     string          `gorm:"size:100" json:"country"`
	Latitude    Coordinate      `gorm:"size:20" json:"latitude,omitempty"`
	Longitude   Coordinate      `gorm:"size:20" json:"longitude,omitempty"`
	Status      string          `gorm:"size:20;not null;default:'active'" json:"status"`
	Language    string          `gorm:"size:5;not null;default:'en';index" json:"language"`
	Views       int             `gorm:"default:0" json:"views"`
	Slug        *string         `gorm:"size:255;uniqueIndex" json:"slug,omitempty"`
	AgentID     *uuid.UUID      `gorm:"type:uuid" json:"agent_id,omitempty"`
	Agent       *User           `gorm:"foreignKey:AgentID;constraint:OnDelete:SET NULL" json:"agent,omitempty"`
	WaveID      *uuid.UUID      `gorm:"type:uuid" json:"wave_id,omitempty"`
	Wave        *Wave           `gorm:"foreignKey:WaveID;constraint:OnDelete:SET NULL" json:"wave,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Images    []PropertyImage   `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Amenities []PropertyAmenity `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	Features  []PropertyFeature `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"features,omitempty"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type PropertyImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	ImageURL   string    `gorm:"type:text;not null" json:"image_url"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type PropertyAmenity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_property_amenity,priority:1" json:"property_id"`
	Amenity    string    `gorm:"size:100;not null;uniqueIndex:idx_property_amenity,priority:2" json:"amenity"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type PropertyFeature struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_property_feature,priority:1" json:"property_id"`
	Feature    string    `gorm:"size:100;not null;uniqueIndex:idx_property_feature,priority:2" json:"feature"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
