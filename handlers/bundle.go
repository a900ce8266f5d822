package handlers

import (
	userRepo "toolshare/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers plus what the route-level middleware needs.
type HandlerBundle struct {
	UserRepo  userRepo.UserRepository
	AuthCache *redis.Client

	User     *UserHandler
	Tool     *ToolHandler
	Booking  *BookingHandler
	Message  *MessageHandler
	Review   *ReviewHandler
	Realtime *RealtimeHandler
}
