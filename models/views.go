package models

import "time"

// UserSummary is the public projection of a user embedded in other responses.
type UserSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Avatar      string  `json:"avatar"`
	RatingAvg   float64 `json:"ratingAvg"`
	RatingCount int     `json:"ratingCount"`
}

// ToolSummary is the projection of a tool embedded in bookings and conversations.
type ToolSummary struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Image    string       `json:"image,omitempty"`
	Category ToolCategory `json:"category"`
	Price    ToolPrice    `json:"price"`
}

// BookingView is a booking with its references expanded.
type BookingView struct {
	ID              string         `json:"id"`
	Tool            *ToolSummary   `json:"tool"`
	Renter          *UserSummary   `json:"renter"`
	Owner           *UserSummary   `json:"owner"`
	Start           time.Time      `json:"start"`
	End             time.Time      `json:"end"`
	Pricing         BookingPricing `json:"pricing"`
	Deposit         float64        `json:"deposit"`
	Status          BookingStatus  `json:"status"`
	PaymentIntentID string         `json:"paymentIntentId,omitempty"`
	History         []StatusChange `json:"history"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type MyBookingsView struct {
	AsRenter []BookingView `json:"asRenter"`
	AsOwner  []BookingView `json:"asOwner"`
}

// ReviewView is a review with the reviewer expanded.
type ReviewView struct {
	Review
	Reviewer *UserSummary `json:"reviewer"`
}
