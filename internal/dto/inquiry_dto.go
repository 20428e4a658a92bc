package dto

import "github.com/google/uuid"

type CreateInquiryInput struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	Name       string    `json:"name" binding:"required,max=100"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      *string   `json:"phone"`
	Message    string    `json:"message" binding:"required,min=5"`
}

type UpdateInquiryStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending replied closed"`
}
