package models

import "time"

// Community is a neighborhood/city page grouping listings.
// PropertyCount is denormalized and recomputed by the background janitor.
type Community struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Description   string    `json:"description"`
	Image         string    `json:"image,omitempty"`
	PropertyCount int       `json:"propertyCount"`
	AIInsights    string    `json:"aiInsights,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
