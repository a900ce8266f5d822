package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusDeclined  BookingStatus = "declined"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition can leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusDeclined || s == StatusCancelled || s == StatusCompleted
}

// BookingPricing is frozen at creation time.
type BookingPricing struct {
	Hourly float64 `bson:"hourly" json:"hourly"`
	Daily  float64 `bson:"daily" json:"daily"`
	Total  float64 `bson:"total" json:"total"`
}

// StatusChange records who moved a booking between two states.
type StatusChange struct {
	From    BookingStatus `bson:"from" json:"from"`
	To      BookingStatus `bson:"to" json:"to"`
	Event   string        `bson:"event" json:"event"`
	ActorID string        `bson:"actorId" json:"actorId"`
	At      time.Time     `bson:"at" json:"at"`
}

// Booking is a reservation of a tool by a renter.
type Booking struct {
	ID              string         `bson:"id" json:"id"`
	ToolID          string         `bson:"toolId" json:"toolId"`
	RenterID        string         `bson:"renterId" json:"renterId"`
	OwnerID         string         `bson:"ownerId" json:"ownerId"` // copied from the tool at creation
	Start           time.Time      `bson:"start" json:"start"`
	End             time.Time      `bson:"end" json:"end"`
	Pricing         BookingPricing `bson:"pricing" json:"pricing"`
	Deposit         float64        `bson:"deposit" json:"deposit"`
	Status          BookingStatus  `bson:"status" json:"status"`
	PaymentIntentID string         `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	ClientSecret    string         `bson:"clientSecret,omitempty" json:"-"`
	History         []StatusChange `bson:"history" json:"history"`
	Version         int            `bson:"version" json:"version"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// IsParticipant reports whether userID is the renter or the owner.
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (b.RenterID == userID || b.OwnerID == userID)
}

// Counterpart returns the other participant, or "" if userID is not a participant.
func (b *Booking) Counterpart(userID string) string {
	switch userID {
	case b.RenterID:
		return b.OwnerID
	case b.OwnerID:
		return b.RenterID
	}
	return ""
}

// CreateBookingRequest accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
type CreateBookingRequest struct {
	ToolID string `json:"toolId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// PaymentDetails is handed to the renter after approval so the client can confirm the charge.
type PaymentDetails struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}
