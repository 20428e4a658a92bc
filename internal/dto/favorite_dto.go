package dto

import "github.com/google/uuid"

type ToggleFavoriteRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
}

type FavoriteStatusResponse struct {
	PropertyID uuid.UUID `json:"property_id"`
	Favorited  bool      `json:"favorited"`
	Count      int64     `json:"count"`
}

// ImportFavoritesRequest carries favorites collected while browsing as a
// guest, synced once after sign-in.
type ImportFavoritesRequest struct {
	PropertyIDs []uuid.UUID `json:"property_ids" binding:"required,min=1,max=200"`
}

type ImportFavoritesResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
