package models

import "time"

const MaxReviewCommentLength = 500

// Review is written by one booking participant about the other.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	ToolID     string    `bson:"toolId" json:"toolId"`
	ReviewerID string    `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string    `bson:"revieweeId" json:"revieweeId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateReviewRequest keeps the rating as a float so non-integer input can be rejected explicitly.
type CreateReviewRequest struct {
	BookingID string   `json:"bookingId"`
	Rating    *float64 `json:"rating"`
	Comment   string   `json:"comment"`
}

type ReviewPage struct {
	Reviews    []ReviewView `json:"reviews"`
	Pagination Pagination   `json:"pagination"`
}

// RatingStats is the result of a full recompute over a user's received reviews.
type RatingStats struct {
	Average float64 `json:"ratingAvg"`
	Count   int     `json:"ratingCount"`
}
