package models

import "time"

// Moderation states of a listing. Every listing starts out pending.
const (
	PropertyStatusPending  = "pending"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)

// Property represents a single real-estate listing.
type Property struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	City          string    `json:"city"`
	Price         int       `json:"price"`        // smallest currency unit
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Area          int       `json:"area"`         // square feet
	PropertyType  string    `json:"propertyType"` // apartment, villa, house, plot, commercial
	IsForSale     bool      `json:"isForSale"`
	IsFeatured    bool      `json:"isFeatured"`
	Status        string    `json:"status"`
	Rating        int       `json:"rating"`
	Images        []string  `json:"images"`
	OwnerID       int       `json:"ownerId"`
	AIDescription string    `json:"aiDescription,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
