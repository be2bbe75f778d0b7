package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/secondli/secondli-be/internal/models"
)

// maxEvents bounds the activity feed; older entries are discarded.
const maxEvents = 200

// MemoryStore is the in-memory implementation of Store. A single mutex
// guards all collections so that each operation is atomic with respect to
// concurrent requests. The store hands out copies; map-resident structs are
// never shared with callers.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[int]models.User
	properties  map[int]models.Property
	agents      map[int]models.Agent
	communities map[int]models.Community
	sessions    map[string]models.Session
	events      []models.Event

	nextUserID      int
	nextPropertyID  int
	nextAgentID     int
	nextCommunityID int
	nextEventID     int
}

// NewMemoryStore creates an empty store with id counters starting at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:           make(map[int]models.User),
		properties:      make(map[int]models.Property),
		agents:          make(map[int]models.Agent),
		communities:     make(map[int]models.Community),
		sessions:        make(map[string]models.Session),
		nextUserID:      1,
		nextPropertyID:  1,
		nextAgentID:     1,
		nextCommunityID: 1,
		nextEventID:     1,
	}
}

// --- users ---

// CreateUser assigns the next user id and stores the record. The username
// and email uniqueness scans run under the same write lock as the insert,
// so two racing registrations cannot both succeed. Username collisions are
// reported before email collisions.
func (m *MemoryStore) CreateUser(u NewUser) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return models.User{}, ErrUsernameTaken
		}
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return models.User{}, ErrEmailTaken
		}
	}

	userType := u.UserType
	if userType == "" {
		userType = models.UserTypeUser
	}
	user := models.User{
		ID:        m.nextUserID,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		UserType:  userType,
		CreatedAt: time.Now(),
	}
	m.nextUserID++
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(id int) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *MemoryStore) GetUserByUsername(username string) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *MemoryStore) GetUserByEmail(email string) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// UpdateUser merges the non-nil fields onto the stored record.
func (m *MemoryStore) UpdateUser(id int, upd UserUpdate) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, false
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.UserType != nil {
		u.UserType = *upd.UserType
	}
	m.users[id] = u
	return u, true
}

// --- properties ---

// CreateProperty assigns the next id and the moderation defaults: every new
// listing starts pending, not featured, unrated.
func (m *MemoryStore) CreateProperty(p NewProperty) models.Property {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	prop := models.Property{
		ID:           m.nextPropertyID,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		City:         p.City,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		PropertyType: p.PropertyType,
		IsForSale:    p.IsForSale,
		IsFeatured:   false,
		Status:       models.PropertyStatusPending,
		Images:       append([]string(nil), p.Images...),
		OwnerID:      p.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.nextPropertyID++
	m.properties[prop.ID] = prop
	return cloneProperty(prop)
}

func (m *MemoryStore) GetProperty(id int) (models.Property, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.properties[id]
	if !ok {
		return models.Property{}, false
	}
	return cloneProperty(p), true
}

// ListProperties applies the filter as a conjunction, sorts by ascending id
// and slices by offset/limit.
func (m *MemoryStore) ListProperties(f PropertyFilter) []models.Property {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Property, 0)
	for _, p := range m.properties {
		if !matchProperty(p, f) {
			continue
		}
		matched = append(matched, cloneProperty(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return []models.Property{}
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched
}

func matchProperty(p models.Property, f PropertyFilter) bool {
	if f.City != "" && p.City != f.City {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	if f.OwnerID != 0 && p.OwnerID != f.OwnerID {
		return false
	}
	if f.Location != "" {
		needle := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(p.Location), needle) &&
			!strings.Contains(strings.ToLower(p.City), needle) {
			return false
		}
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.Bedrooms != 0 && p.Bedrooms != f.Bedrooms {
		return false
	}
	if f.MinPrice != 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice != 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

// UpdateProperty merges the non-nil fields onto the stored record and
// refreshes the update timestamp. A miss leaves the store untouched.
func (m *MemoryStore) UpdateProperty(id int, upd PropertyUpdate) (models.Property, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.properties[id]
	if !ok {
		return models.Property{}, false
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.City != nil {
		p.City = *upd.City
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = *upd.Bathrooms
	}
	if upd.Area != nil {
		p.Area = *upd.Area
	}
	if upd.PropertyType != nil {
		p.PropertyType = *upd.PropertyType
	}
	if upd.IsForSale != nil {
		p.IsForSale = *upd.IsForSale
	}
	if upd.IsFeatured != nil {
		p.IsFeatured = *upd.IsFeatured
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.Images != nil {
		p.Images = append([]string(nil), (*upd.Images)...)
	}
	if upd.AIDescription != nil {
		p.AIDescription = *upd.AIDescription
	}
	p.UpdatedAt = time.Now()
	m.properties[id] = p
	return cloneProperty(p), true
}

func cloneProperty(p models.Property) models.Property {
	p.Images = append([]string(nil), p.Images...)
	return p
}

// --- agents ---

// CreateAgent stores a profile for the user. The one-profile-per-user scan
// runs under the write lock, so racing creates for the same user cannot
// both succeed.
func (m *MemoryStore) CreateAgent(a NewAgent) (models.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.agents {
		if existing.UserID == a.UserID {
			return models.Agent{}, ErrAgentExists
		}
	}

	agent := models.Agent{
		ID:             m.nextAgentID,
		UserID:         a.UserID,
		Specialization: a.Specialization,
		Experience:     a.Experience,
		About:          a.About,
		ProfileImage:   a.ProfileImage,
		CreatedAt:      time.Now(),
	}
	m.nextAgentID++
	m.agents[agent.ID] = agent
	return agent, nil
}

func (m *MemoryStore) GetAgent(id int) (models.Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[id]
	return a, ok
}

func (m *MemoryStore) GetAgentByUserID(userID int) (models.Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.agents {
		if a.UserID == userID {
			return a, true
		}
	}
	return models.Agent{}, false
}

func (m *MemoryStore) ListAgents(p Page) []models.Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agents := make([]models.Agent, 0, len(m.agents))
	for _, a := range m.agents {
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	return sliceAgents(agents, p)
}

func sliceAgents(agents []models.Agent, p Page) []models.Agent {
	if p.Offset > 0 {
		if p.Offset >= len(agents) {
			return []models.Agent{}
		}
		agents = agents[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(agents) {
		agents = agents[:p.Limit]
	}
	return agents
}

// --- communities ---

func (m *MemoryStore) CreateCommunity(c NewCommunity) models.Community {
	m.mu.Lock()
	defer m.mu.Unlock()

	community := models.Community{
		ID:          m.nextCommunityID,
		Name:        c.Name,
		City:        c.City,
		Description: c.Description,
		Image:       c.Image,
		AIInsights:  c.AIInsights,
		CreatedAt:   time.Now(),
	}
	m.nextCommunityID++
	m.communities[community.ID] = community
	return community
}

func (m *MemoryStore) GetCommunity(id int) (models.Community, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.communities[id]
	return c, ok
}

func (m *MemoryStore) ListCommunities(p Page) []models.Community {
	m.mu.RLock()
	defer m.mu.RUnlock()

	communities := make([]models.Community, 0, len(m.communities))
	for _, c := range m.communities {
		communities = append(communities, c)
	}
	sort.Slice(communities, func(i, j int) bool { return communities[i].ID < communities[j].ID })

	if p.Offset > 0 {
		if p.Offset >= len(communities) {
			return []models.Community{}
		}
		communities = communities[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(communities) {
		communities = communities[:p.Limit]
	}
	return communities
}

// SetCommunityPropertyCount overwrites the denormalized listing count. Used
// by the recount job.
func (m *MemoryStore) SetCommunityPropertyCount(id, count int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.communities[id]
	if !ok {
		return false
	}
	c.PropertyCount = count
	m.communities[id] = c
	return true
}

// --- sessions ---

// CreateSession issues a fresh uuid token valid for ttl.
func (m *MemoryStore) CreateSession(userID int, ttl time.Duration) models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	m.sessions[s.Token] = s
	return s
}

// GetSession misses on unknown and on expired tokens.
func (m *MemoryStore) GetSession(token string) (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok || s.Expired(time.Now()) {
		return models.Session{}, false
	}
	return s, true
}

func (m *MemoryStore) DeleteSession(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// DeleteExpiredSessions drops every expired session and reports how many
// were removed.
func (m *MemoryStore) DeleteExpiredSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// --- events ---

// AddEvent appends to the activity feed, discarding the oldest entries once
// the feed exceeds its bound.
func (m *MemoryStore) AddEvent(eventType, message string, propertyID int) models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := models.Event{
		ID:         m.nextEventID,
		Type:       eventType,
		Message:    message,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	m.nextEventID++
	m.events = append(m.events, e)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	return e
}

// RecentEvents returns up to limit entries, newest first.
func (m *MemoryStore) RecentEvents(limit int) []models.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.events) {
		limit = len(m.events)
	}
	events := make([]models.Event, 0, limit)
	for i := len(m.events) - 1; i >= len(m.events)-limit; i-- {
		events = append(events, m.events[i])
	}
	return events
}
