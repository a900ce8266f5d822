package models

import "time"

// MaxMessageLength is the longest accepted message body, in characters.
const MaxMessageLength = 1000

// Message is immutable once stored, apart from the read flag.
type Message struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	FromUserID string    `bson:"fromUserId" json:"fromUserId"`
	ToUserID   string    `bson:"toUserId" json:"toUserId"`
	Body       string    `bson:"body" json:"body"`
	Read       bool      `bson:"read" json:"read"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type SendMessageRequest struct {
	BookingID string `json:"bookingId"`
	Body      string `json:"body"`
}

type MessagePage struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}

// Conversation summarises one booking thread for the inbox view.
type Conversation struct {
	Booking       *BookingView `json:"booking"`
	LatestMessage *Message     `json:"latestMessage"`
	UnreadCount   int64        `json:"unreadCount"`
}
