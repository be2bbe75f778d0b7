package models

import "time"

// User types recognized by the authorization checks.
const (
	UserTypeUser  = "user"
	UserTypeAgent = "agent"
	UserTypeAdmin = "admin"
)

// User represents an account on the platform.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // scrypt digest, never exposed to the client
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	UserType  string    `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}
