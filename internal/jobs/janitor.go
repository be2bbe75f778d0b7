// Package jobs runs the background maintenance the request path never
// does: dropping expired sessions and refreshing the denormalized
// per-community listing counts.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/secondli/secondli-be/internal/storage"
)

// Janitor owns the cron runner for the maintenance tasks.
type Janitor struct {
	store storage.Store
	cron  *cron.Cron
}

// NewJanitor creates a janitor with the given cron specs for session
// pruning and community recounting.
func NewJanitor(store storage.Store, pruneSpec, recountSpec string) (*Janitor, error) {
	j := &Janitor{store: store, cron: cron.New()}

	if _, err := j.cron.AddFunc(pruneSpec, j.pruneSessions); err != nil {
		return nil, fmt.Errorf("invalid session prune schedule %q: %w", pruneSpec, err)
	}
	if _, err := j.cron.AddFunc(recountSpec, j.recountCommunities); err != nil {
		return nil, fmt.Errorf("invalid community recount schedule %q: %w", recountSpec, err)
	}
	return j, nil
}

// Start launches the cron runner. The seeded figures stand until the first
// recount tick.
func (j *Janitor) Start() {
	log.Info().Msg("Starting background janitor")
	j.cron.Start()
}

// Stop halts the cron runner, waiting for a running task to finish.
func (j *Janitor) Stop() {
	log.Info().Msg("Stopping background janitor")
	<-j.cron.Stop().Done()
}

func (j *Janitor) pruneSessions() {
	if removed := j.store.DeleteExpiredSessions(); removed > 0 {
		log.Info().Int("removed", removed).Msg("Pruned expired sessions")
	}
}

// recountCommunities rewrites each community's denormalized listing count
// from the properties currently in that city.
func (j *Janitor) recountCommunities() {
	for _, community := range j.store.ListCommunities(storage.Page{}) {
		count := len(j.store.ListProperties(storage.PropertyFilter{City: community.City}))
		if count == community.PropertyCount {
			continue
		}
		j.store.SetCommunityPropertyCount(community.ID, count)
		log.Info().
			Str("community", community.Name).
			Int("count", count).
			Msg("Refreshed community property count")
	}
}
