package dto

import "aimrealty.com/estateapi/internal/model"

type ReportLocationInput struct {
	Latitude   model.Coordinate `json:"latitude" binding:"required"`
	Longitude  model.Coordinate `json:"longitude" binding:"required"`
	Accuracy   *float64         `json:"accuracy"`
	Source     string           `json:"source" binding:"omitempty,oneof=gps ip manual"`
	Permission string           `json:"permission" binding:"omitempty,oneof=granted denied prompt"`
}
