package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid or expired token")

// User models a registered account. The password hash never leaves the
// process: it is excluded from every JSON rendering.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	FirstName    string     `json:"first_name" bson:"first_name"`
	LastName     string     `json:"last_name" bson:"last_name"`
	Avatar       string     `json:"avatar" bson:"avatar"`
	Bio          string     `json:"bio" bson:"bio"`
	Phone        string     `json:"phone" bson:"phone"`
	Location     string     `json:"location" bson:"location"`
	Website      string     `json:"website" bson:"website"`
	LinkedIn     string     `json:"linkedin" bson:"linkedin"`
	GitHub       string     `json:"github" bson:"github"`
	IsVerified   bool       `json:"is_verified" bson:"is_verified"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
