package repository

import (
	bookingRepo "toolshare/database/repository/booking"
	messageRepo "toolshare/database/repository/message"
	reviewRepo "toolshare/database/repository/review"
	toolRepo "toolshare/database/repository/tool"
	userRepo "toolshare/database/repository/user"
)

// Re-export the repository interfaces and constructors.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

type ToolRepository = toolRepo.ToolRepository

var NewMongoToolRepo = toolRepo.NewMongoToolRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

type MessageRepository = messageRepo.MessageRepository

var NewMongoMessageRepo = messageRepo.NewMongoMessageRepo

type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

// Repositories bundles every store the services depend on.
type Repositories struct {
	Users    UserRepository
	Tools    ToolRepository
	Bookings BookingRepository
	Messages MessageRepository
	Reviews  ReviewRepository
}

// NewMongoRepositories builds all Mongo-backed repositories. database.InitDB must have run.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Users:    NewMongoUserRepo(),
		Tools:    NewMongoToolRepo(),
		Bookings: NewMongoBookingRepo(),
		Messages: NewMongoMessageRepo(),
		Reviews:  NewMongoReviewRepo(),
	}
}
