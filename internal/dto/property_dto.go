package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aimrealty.com/estateapi/internal/model"
)

// CreatePropertyInput is the insert contract. Server-assigned fields
// (id, slug, views, timestamps) are absent on purpose: callers may not
// set them.
type CreatePropertyInput struct {
	Title       string            `json:"title" binding:"required,min=3,max=255"`
	Description string            `json:"description"`
	Type        string            `json:"type" binding:"required,oneof=house apartment villa land commercial"`
	ListingType string            `json:"listing_type" binding:"required,oneof=sale rent"`
	Price       decimal.Decimal   `json:"price" binding:"required"`
	Currency    string            `json:"currency" binding:"omitempty,len=3"`
	Bedrooms    int               `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   int               `json:"bathrooms" binding:"omitempty,min=0"`
	Area        int               `json:"area" binding:"omitempty,min=0"`
	Address     string            `json:"address"`
	City        string            `json:"city" binding:"required"`
	Country     string            `json:"country"`
	Latitude    *model.Coordinate `json:"latitude"`
	Longitude   *model.Coordinate `json:"longitude"`
	Language    string            `json:"language" binding:"omitempty,oneof=en ar kur"`
	WaveID      *uuid.UUID        `json:"wave_id"`
	Images      []string          `json:"images"`
	Amenities   []string          `json:"amenities"`
	Features    []string          `json:"features"`
}

// UpdatePropertyInput is the partial-document update contract: any subset
// of mutable fields, all optional, same enum constraints on whichever are
// present.
type UpdatePropertyInput struct {
	Title       *string           `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string           `json:"description"`
	Type        *string           `json:"type" binding:"omitempty,oneof=house apartment villa land commercial"`
	ListingType *string           `json:"listing_type" binding:"omitempty,oneof=sale rent"`
	Price       *decimal.Decimal  `json:"price"`
	Currency    *string           `json:"currency" binding:"omitempty,len=3"`
	Bedrooms    *int              `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   *int              `json:"bathrooms" binding:"omitempty,min=0"`
	Area        *int              `json:"area" binding:"omitempty,min=0"`
	Address     *string           `json:"address"`
	City        *string           `json:"city"`
	Country     *string           `json:"country"`
	Latitude    *model.Coordinate `json:"latitude"`
	Longitude   *model.Coordinate `json:"longitude"`
	Status      *string           `json:"status" binding:"omitempty,oneof=active pending sold rented"`
	Language    *string           `json:"language" binding:"omitempty,oneof=en ar kur"`
	Amenities   []string          `json:"amenities"`
	Features    []string          `json:"features"`
}

type PropertyFilter struct {
	Type        string `form:"type"`
	ListingType string `form:"listing_type" binding:"omitempty,oneof=sale rent"`
	City        string `form:"city"`
	Language    string `form:"language" binding:"omitempty,oneof=en ar kur"`
	MinPrice    string `form:"min_price"`
	MaxPrice    string `form:"max_price"`
	Bedrooms    int    `form:"bedrooms"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=newest price_asc price_desc popular"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	Limit       int    `form:"limit,default=12" binding:"min=1,max=50"`
}

type PaginatedPropertyResponse struct {
	Data []model.Property `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}
