package storage

import "fmt"

// Seed loads the initial community pages so a fresh process has content to
// serve. Counts reflect the marketing figures until the recount job runs.
func (m *MemoryStore) Seed() {
	cities := []struct {
		name  string
		count int
	}{
		{"Mumbai", 4235},
		{"Delhi NCR", 3890},
		{"Bangalore", 2970},
		{"Hyderabad", 2105},
	}

	for _, c := range cities {
		community := m.CreateCommunity(NewCommunity{
			Name:        c.name,
			City:        c.name,
			Description: fmt.Sprintf("Discover properties in %s, one of India's most vibrant cities.", c.name),
			AIInsights:  fmt.Sprintf("%s is experiencing steady growth in real estate values, with promising investment opportunities.", c.name),
		})
		m.SetCommunityPropertyCount(community.ID, c.count)
	}
}
