package models

import "time"

// Agent is the broker profile attached to a user account.
// At most one agent row exists per user.
type Agent struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"` // years
	About          string    `json:"about"`
	ProfileImage   string    `json:"profileImage"`
	Ratings        int       `json:"ratings"`
	ReviewCount    int       `json:"reviewCount"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}
