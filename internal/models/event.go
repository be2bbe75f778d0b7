package models

import "time"

// Event types emitted on the activity feed.
const (
	EventPropertyCreated = "property.created"
	EventPropertyUpdated = "property.updated"
)

// Event is one entry in the recent-activity feed.
type Event struct {
	ID         int       `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	PropertyID int       `json:"propertyId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
