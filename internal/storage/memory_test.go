package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/secondli/secondli-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProperty(city string, price, bedrooms int) NewProperty {
	return NewProperty{
		Title:        "2BHK in " + city,
		Description:  "Bright and airy",
		Location:     "Central " + city,
		City:         city,
		Price:        price,
		Bedrooms:     bedrooms,
		Bathrooms:    1,
		Area:         900,
		PropertyType: "apartment",
		IsForSale:    true,
	}
}

func mustCreateUser(t *testing.T, store *MemoryStore, u NewUser) models.User {
	t.Helper()
	user, err := store.CreateUser(u)
	require.NoError(t, err)
	return user
}

func TestCreateUserAssignsSequentialIDsAndDefaults(t *testing.T) {
	store := NewMemoryStore()

	alice := mustCreateUser(t, store, NewUser{Username: "alice", Email: "a@x.com", FullName: "Alice A"})
	bob := mustCreateUser(t, store, NewUser{Username: "bob", Email: "b@x.com", FullName: "Bob B", UserType: models.UserTypeAdmin})

	assert.Equal(t, 1, alice.ID)
	assert.Equal(t, 2, bob.ID)
	assert.Equal(t, models.UserTypeUser, alice.UserType)
	assert.Equal(t, models.UserTypeAdmin, bob.UserType)
	assert.False(t, alice.CreatedAt.IsZero())
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	store := NewMemoryStore()
	mustCreateUser(t, store, NewUser{Username: "alice", Email: "a@x.com", FullName: "Alice A"})

	_, err := store.CreateUser(NewUser{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, ok := store.GetUserByEmail("other@x.com")
	assert.False(t, ok, "rejected create must not insert")

	_, err = store.CreateUser(NewUser{Username: "alice2", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	_, ok = store.GetUserByUsername("alice2")
	assert.False(t, ok)

	// Username collision wins when both fields collide.
	_, err = store.CreateUser(NewUser{Username: "alice", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserConcurrentDuplicatesSingleWinner(t *testing.T) {
	store := NewMemoryStore()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.CreateUser(NewUser{
				Username: "alice",
				Email:    fmt.Sprintf("a%d@x.com", i),
				FullName: "Alice A",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrUsernameTaken)
		}
	}
	assert.Equal(t, 1, created, "exactly one racing registration may win")
}

func TestGetUserByUsernameAndEmail(t *testing.T) {
	store := NewMemoryStore()
	mustCreateUser(t, store, NewUser{Username: "alice", Email: "a@x.com"})

	got, ok := store.GetUserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, "a@x.com", got.Email)

	_, ok = store.GetUserByUsername("nobody")
	assert.False(t, ok)

	_, ok = store.GetUserByEmail("a@x.com")
	assert.True(t, ok)
	_, ok = store.GetUserByEmail("b@x.com")
	assert.False(t, ok)
}

func TestUpdateUserMergesOnlyProvidedFields(t *testing.T) {
	store := NewMemoryStore()
	user := mustCreateUser(t, store, NewUser{Username: "alice", Email: "a@x.com", FullName: "Alice A"})

	agentType := models.UserTypeAgent
	updated, ok := store.UpdateUser(user.ID, UserUpdate{UserType: &agentType})
	require.True(t, ok)
	assert.Equal(t, models.UserTypeAgent, updated.UserType)
	assert.Equal(t, "Alice A", updated.FullName)

	_, ok = store.UpdateUser(99, UserUpdate{UserType: &agentType})
	assert.False(t, ok)
}

func TestCreatePropertyDefaults(t *testing.T) {
	store := NewMemoryStore()

	p := store.CreateProperty(newTestProperty("Mumbai", 5000000, 2))

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, models.PropertyStatusPending, p.Status)
	assert.False(t, p.IsFeatured)
	assert.Zero(t, p.Rating)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestUpdatePropertyMergeSemantics(t *testing.T) {
	store := NewMemoryStore()
	created := store.CreateProperty(newTestProperty("Mumbai", 5000000, 2))

	time.Sleep(time.Millisecond)

	newPrice := 5500000
	approved := models.PropertyStatusApproved
	updated, ok := store.UpdateProperty(created.ID, PropertyUpdate{Price: &newPrice, Status: &approved})
	require.True(t, ok)

	assert.Equal(t, 5500000, updated.Price)
	assert.Equal(t, models.PropertyStatusApproved, updated.Status)
	// Unsupplied fields are preserved.
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Bedrooms, updated.Bedrooms)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdatePropertyMissingLeavesStoreUnchanged(t *testing.T) {
	store := NewMemoryStore()
	store.CreateProperty(newTestProperty("Mumbai", 5000000, 2))

	title := "hijacked"
	_, ok := store.UpdateProperty(42, PropertyUpdate{Title: &title})
	assert.False(t, ok)

	all := store.ListProperties(PropertyFilter{})
	require.Len(t, all, 1)
	assert.NotEqual(t, "hijacked", all[0].Title)
}

func TestListPropertiesFilterAndPaging(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		p := store.CreateProperty(newTestProperty("Mumbai", 1000000*(i+1), 2))
		if i < 4 {
			featured := true
			_, ok := store.UpdateProperty(p.ID, PropertyUpdate{IsFeatured: &featured})
			require.True(t, ok)
		}
	}
	store.CreateProperty(newTestProperty("Pune", 2000000, 3))

	featured := true
	got := store.ListProperties(PropertyFilter{Featured: &featured, Limit: 3})
	require.Len(t, got, 3)
	for _, p := range got {
		assert.True(t, p.IsFeatured)
	}

	// Ascending-id order makes paging stable.
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})

	page2 := store.ListProperties(PropertyFilter{Featured: &featured, Limit: 3, Offset: 3})
	require.Len(t, page2, 1)
	assert.Equal(t, 4, page2[0].ID)

	byCity := store.ListProperties(PropertyFilter{City: "Pune"})
	require.Len(t, byCity, 1)
	assert.Equal(t, "Pune", byCity[0].City)

	assert.Empty(t, store.ListProperties(PropertyFilter{Offset: 50}))
}

func TestListPropertiesSearchCriteria(t *testing.T) {
	store := NewMemoryStore()
	store.CreateProperty(newTestProperty("Mumbai", 5000000, 2))
	store.CreateProperty(newTestProperty("Bangalore", 3000000, 3))
	store.CreateProperty(NewProperty{
		Title: "Villa", Description: "d", Location: "Whitefield", City: "Bangalore",
		Price: 9000000, Bedrooms: 4, Bathrooms: 3, Area: 2400, PropertyType: "villa", IsForSale: true,
	})

	tests := []struct {
		name    string
		filter  PropertyFilter
		wantIDs []int
	}{
		{"location substring matches city, case-insensitive", PropertyFilter{Location: "bangal"}, []int{2, 3}},
		{"location substring matches location field", PropertyFilter{Location: "whitefield"}, []int{3}},
		{"exact type", PropertyFilter{PropertyType: "villa"}, []int{3}},
		{"exact bedrooms", PropertyFilter{Bedrooms: 3}, []int{2}},
		{"price range inclusive", PropertyFilter{MinPrice: 3000000, MaxPrice: 5000000}, []int{1, 2}},
		{"conjunction narrows", PropertyFilter{Location: "bangalore", MinPrice: 5000000}, []int{3}},
		{"no criteria returns all", PropertyFilter{}, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.ListProperties(tt.filter)
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPropertyCopiesAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	created := store.CreateProperty(NewProperty{
		Title: "t", Description: "d", Location: "l", City: "c",
		Price: 1, Area: 1, PropertyType: "apartment", IsForSale: true,
		Images: []string{"a.jpg"},
	})

	created.Images[0] = "tampered.jpg"

	stored, ok := store.GetProperty(created.ID)
	require.True(t, ok)
	assert.Equal(t, "a.jpg", stored.Images[0])
}

func TestAgents(t *testing.T) {
	store := NewMemoryStore()
	agent, err := store.CreateAgent(NewAgent{UserID: 7, Specialization: "Residential", Experience: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, agent.ID)
	assert.Zero(t, agent.Ratings)
	assert.Zero(t, agent.ReviewCount)
	assert.False(t, agent.IsVerified)

	byUser, ok := store.GetAgentByUserID(7)
	require.True(t, ok)
	assert.Equal(t, agent.ID, byUser.ID)

	_, ok = store.GetAgentByUserID(8)
	assert.False(t, ok)

	_, err = store.CreateAgent(NewAgent{UserID: 8})
	require.NoError(t, err)
	assert.Len(t, store.ListAgents(Page{}), 2)
	assert.Len(t, store.ListAgents(Page{Limit: 1}), 1)
}

func TestCreateAgentRejectsSecondProfileForUser(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.CreateAgent(NewAgent{UserID: 7, Specialization: "Residential"})
	require.NoError(t, err)

	_, err = store.CreateAgent(NewAgent{UserID: 7, Specialization: "Commercial"})
	assert.ErrorIs(t, err, ErrAgentExists)
	assert.Len(t, store.ListAgents(Page{}), 1)
}

func TestCreateAgentConcurrentSingleWinner(t *testing.T) {
	store := NewMemoryStore()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateAgent(NewAgent{UserID: 7, Specialization: "Residential"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrAgentExists)
		}
	}
	assert.Equal(t, 1, created, "a user gets at most one agent profile")
	assert.Len(t, store.ListAgents(Page{}), 1)
}

func TestCommunities(t *testing.T) {
	store := NewMemoryStore()
	c := store.CreateCommunity(NewCommunity{Name: "Mumbai", City: "Mumbai", Description: "d"})

	assert.Equal(t, 1, c.ID)
	assert.Zero(t, c.PropertyCount)

	require.True(t, store.SetCommunityPropertyCount(c.ID, 42))
	got, ok := store.GetCommunity(c.ID)
	require.True(t, ok)
	assert.Equal(t, 42, got.PropertyCount)

	assert.False(t, store.SetCommunityPropertyCount(99, 1))
}

func TestSeedLoadsCommunityFixtures(t *testing.T) {
	store := NewMemoryStore()
	store.Seed()

	communities := store.ListCommunities(Page{})
	require.Len(t, communities, 4)
	assert.Equal(t, "Mumbai", communities[0].Name)
	assert.Equal(t, 4235, communities[0].PropertyCount)
}

func TestSessions(t *testing.T) {
	store := NewMemoryStore()

	session := store.CreateSession(1, time.Hour)
	require.NotEmpty(t, session.Token)

	got, ok := store.GetSession(session.Token)
	require.True(t, ok)
	assert.Equal(t, 1, got.UserID)

	_, ok = store.GetSession("unknown")
	assert.False(t, ok)

	store.DeleteSession(session.Token)
	_, ok = store.GetSession(session.Token)
	assert.False(t, ok)
}

func TestExpiredSessions(t *testing.T) {
	store := NewMemoryStore()

	expired := store.CreateSession(1, -time.Second)
	live := store.CreateSession(2, time.Hour)

	_, ok := store.GetSession(expired.Token)
	assert.False(t, ok, "expired session must miss")

	assert.Equal(t, 1, store.DeleteExpiredSessions())

	_, ok = store.GetSession(live.Token)
	assert.True(t, ok)
}

func TestEventsNewestFirstAndBounded(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < maxEvents+10; i++ {
		store.AddEvent(models.EventPropertyCreated, "listing", i+1)
	}

	recent := store.RecentEvents(2)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].ID > recent[1].ID, "newest first")

	all := store.RecentEvents(0)
	assert.Len(t, all, maxEvents)
}
