package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// DefaultAvatar is assigned to accounts that never uploaded a profile photo.
const DefaultAvatar = "https://i.pravatar.cc/150?u=default"

// User represents a marketplace member. A user can be a renter and an owner at the same time.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         UserRole  `bson:"role" json:"role"`
	RatingAvg    float64   `bson:"ratingAvg" json:"ratingAvg"`     // maintained by the review aggregator only
	RatingCount  int       `bson:"ratingCount" json:"ratingCount"` // maintained by the review aggregator only
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	Avatar       string    `bson:"avatar" json:"avatar"`
	AvatarID     string    `bson:"avatarId,omitempty" json:"-"`
	IsVerified   bool      `bson:"isVerified" json:"isVerified"`
	Location     *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name     *string  `json:"name"`
	Address  *string  `json:"address"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	FCMToken *string  `json:"fcmToken"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
