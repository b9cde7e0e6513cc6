// services/catalog_cache.go
package services

import (
	"log"
	"sync"
	"time"

	"goreal-api/models"

	"github.com/go-co-op/gocron/v2"
)

// CatalogCache memoizes the Challenges table for a fixed TTL so the catalog
// listing does not hit the sheet store on every request. A background job
// keeps the snapshot warm; the admin bulk rewrite invalidates it.
type CatalogCache struct {
	store *SheetsClient
	ttl   time.Duration

	mu        sync.RWMutex
	snapshot  []models.ChallengeDefinition
	fetchedAt time.Time
	filled    bool
}

func NewCatalogCache(store *SheetsClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: store, ttl: ttl}
}

// Get returns the cached catalog while the snapshot is fresh, otherwise
// refreshes from the store. Before the first successful fill every call
// falls through to the store.
func (c *CatalogCache) Get() ([]models.ChallengeDefinition, error) {
	c.mu.RLock()
	if c.filled && time.Since(c.fetchedAt) < c.ttl {
		snapshot := c.snapshot
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()
	return c.Refresh()
}

// Refresh fetches the catalog from the store and replaces the snapshot.
func (c *CatalogCache) Refresh() ([]models.ChallengeDefinition, error) {
	challenges, err := c.store.GetChallenges()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.snapshot = challenges
	c.fetchedAt = time.Now()
	c.filled = true
	c.mu.Unlock()
	return challenges, nil
}

// Invalidate drops the snapshot; the next Get hits the store.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.filled = false
	c.snapshot = nil
	c.mu.Unlock()
}

// StartRefreshJob keeps the snapshot warm on the cache's TTL.
func (c *CatalogCache) StartRefreshJob() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(c.ttl),
		gocron.NewTask(func() {
			if _, err := c.Refresh(); err != nil {
				log.Printf("[CatalogCache] refresh failed: %v", err)
			}
		}),
	)
}
