package models

import "time"

type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	UserID       *int64    `json:"user_id,omitempty"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	ReviewText   string    `json:"review_text"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	ReviewerName string `json:"reviewer_name" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText   string `json:"review_text"`
}
