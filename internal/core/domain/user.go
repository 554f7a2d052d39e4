package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUserDeactivated = errors.New("account deactivated")
var ErrPasswordMismatch = errors.New("old password is incorrect")
var ErrTokenInvalid = errors.New("invalid or expired token")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system. The password hash is
// never serialized; plaintext passwords exist only inside a single request.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Deactivated  bool      `json:"deactivated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
