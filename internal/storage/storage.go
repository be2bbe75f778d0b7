// Package storage owns every entity instance for the lifetime of the
// process. Nothing is persisted across restarts and nothing is ever deleted
// except expired sessions.
package storage

import (
	"errors"
	"time"

	"github.com/secondli/secondli-be/internal/models"
)

// Uniqueness violations reported by the create operations. The checks run
// inside the store's write lock so racing creates cannot both pass.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrAgentExists   = errors.New("agent profile already exists for user")
)

// NewUser carries the fields accepted when creating a user account.
// Password must already be a digest; the store never hashes.
type NewUser struct {
	Username string
	Password string
	Email    string
	FullName string
	Phone    string
	UserType string
}

// UserUpdate carries the mutable user fields. Nil fields are left untouched.
type UserUpdate struct {
	FullName *string
	Phone    *string
	UserType *string
}

// NewProperty carries the caller-supplied fields of a listing. Moderation
// fields (status, featured, rating) are assigned by the store.
type NewProperty struct {
	Title        string
	Description  string
	Location     string
	City         string
	Price        int
	Bedrooms     int
	Bathrooms    int
	Area         int
	PropertyType string
	IsForSale    bool
	Images       []string
	OwnerID      int
}

// PropertyUpdate carries a partial listing update. Nil fields are left
// untouched; id, owner and creation time are never merged.
type PropertyUpdate struct {
	Title         *string
	Description   *string
	Location      *string
	City          *string
	Price         *int
	Bedrooms      *int
	Bathrooms     *int
	Area          *int
	PropertyType  *string
	IsForSale     *bool
	IsFeatured    *bool
	Status        *string
	Rating        *int
	Images        *[]string
	AIDescription *string
}

// PropertyFilter is the single query capability backing both the listing
// endpoint and search. Every populated field narrows the result; zero
// values mean "no constraint". Results are ordered by ascending id before
// Offset/Limit slicing, so paging is stable across churn.
type PropertyFilter struct {
	City         string // exact match
	Featured     *bool
	OwnerID      int
	Location     string // case-insensitive substring over location or city
	PropertyType string
	Bedrooms     int
	MinPrice     int
	MaxPrice     int
	Limit        int // 0 = no limit
	Offset       int
}

// Page is plain offset/limit slicing for the list endpoints.
type Page struct {
	Limit  int // 0 = no limit
	Offset int
}

// NewAgent carries the fields accepted when creating an agent profile.
type NewAgent struct {
	UserID         int
	Specialization string
	Experience     int
	About          string
	ProfileImage   string
}

// NewCommunity carries the fields accepted when creating a community.
type NewCommunity struct {
	Name        string
	City        string
	Description string
	Image       string
	AIInsights  string
}

// UserStore provides user persistence. Absence is reported via the ok
// result, never as an error; the only error paths are the uniqueness
// violations on create.
type UserStore interface {
	CreateUser(u NewUser) (models.User, error)
	GetUser(id int) (models.User, bool)
	GetUserByUsername(username string) (models.User, bool)
	GetUserByEmail(email string) (models.User, bool)
	UpdateUser(id int, upd UserUpdate) (models.User, bool)
}

// PropertyStore provides listing persistence and querying.
type PropertyStore interface {
	CreateProperty(p NewProperty) models.Property
	GetProperty(id int) (models.Property, bool)
	ListProperties(f PropertyFilter) []models.Property
	UpdateProperty(id int, upd PropertyUpdate) (models.Property, bool)
}

// AgentStore provides agent-profile persistence.
type AgentStore interface {
	CreateAgent(a NewAgent) (models.Agent, error)
	GetAgent(id int) (models.Agent, bool)
	GetAgentByUserID(userID int) (models.Agent, bool)
	ListAgents(p Page) []models.Agent
}

// CommunityStore provides community persistence.
type CommunityStore interface {
	CreateCommunity(c NewCommunity) models.Community
	GetCommunity(id int) (models.Community, bool)
	ListCommunities(p Page) []models.Community
	SetCommunityPropertyCount(id, count int) bool
}

// SessionStore persists web sessions alongside the entities.
type SessionStore interface {
	CreateSession(userID int, ttl time.Duration) models.Session
	GetSession(token string) (models.Session, bool)
	DeleteSession(token string)
	DeleteExpiredSessions() int
}

// EventStore keeps a bounded recent-activity feed.
type EventStore interface {
	AddEvent(eventType, message string, propertyID int) models.Event
	RecentEvents(limit int) []models.Event
}

// Store aggregates every storage concern of the application.
type Store interface {
	UserStore
	PropertyStore
	AgentStore
	CommunityStore
	SessionStore
	EventStore
}
