package dto

import "aimrealty.com/estateapi/internal/model"

type SearchQuery struct {
	Query       string `form:"q" binding:"required"`
	Language    string `form:"language" binding:"omitempty,oneof=en ar kur"`
	ListingType string `form:"listing_type" binding:"omitempty,oneof=sale rent"`
	City        string `form:"city"`
	Limit       int    `form:"limit,default=20" binding:"min=1,max=50"`
}

type SearchResponse struct {
	Query   string           `json:"query"`
	Results []model.Property `json:"results"`
	Total   int64            `json:"total"`
}
