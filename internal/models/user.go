package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	Username  string    `json:"username" db:"username" validate:"required,min=3,max=50"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"password,omitempty" db:"password" validate:"required,min=6"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PasswordResetToken is a single-use, time-limited credential proving
// control of an email address. It is resolved back to a user by email at
// consumption time, not by user id.
type PasswordResetToken struct {
	ID        int       `json:"id" db:"id"`
	Token     string    `json:"-" db:"token"`
	Email     string    `json:"email" db:"email"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Follow is a directed edge: follower follows following.
type Follow struct {
	ID          int       `json:"id" db:"id"`
	FollowerID  int       `json:"follower_id" db:"follower_id"`
	FollowingID int       `json:"following_id" db:"following_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FollowedUser is the projection returned by the following list.
type FollowedUser struct {
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	FollowedAt time.Time `json:"followedAt"`
}
