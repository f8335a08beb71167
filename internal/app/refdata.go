package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-app/internal/domain"
)

// ReferenceRepository serves the static reference tables.
type ReferenceRepository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Difficulties(ctx context.Context) ([]domain.Difficulty, error)
}

// ReferenceCache caches category and difficulty lists with a TTL so the
// presentation layer can refresh its pickers cheaply. Concurrent misses
// for the same list collapse into a single store read.
type ReferenceCache struct {
	store ReferenceRepository
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu           sync.RWMutex
	categories   []domain.Category
	catExpiry    time.Time
	difficulties []domain.Difficulty
	diffExpiry   time.Time
}

func NewReferenceCache(store ReferenceRepository, ttl time.Duration) *ReferenceCache {
	return NewReferenceCacheWithClock(store, ttl, time.Now)
}

// NewReferenceCacheWithClock allows tests to control expiry.
func NewReferenceCacheWithClock(store ReferenceRepository, ttl time.Duration, clock func() time.Time) *ReferenceCache {
	return &ReferenceCache{store: store, ttl: ttl, clock: clock}
}

func (c *ReferenceCache) Categories(ctx context.Context) ([]domain.Category, error) {
	now := c.clock()
	c.mu.RLock()
	if c.categories != nil && c.catExpiry.After(now) {
		cached := c.categories
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		categories, err := c.store.Categories(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.categories = categories
		c.catExpiry = c.clock().Add(c.ttl)
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *ReferenceCache) Difficulties(ctx context.Context) ([]domain.Difficulty, error) {
	now := c.clock()
	c.mu.RLock()
	if c.difficulties != nil && c.diffExpiry.After(now) {
		cached := c.difficulties
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("difficulties", func() (interface{}, error) {
		difficulties, err := c.store.Difficulties(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.difficulties = difficulties
		c.diffExpiry = c.clock().Add(c.ttl)
		c.mu.Unlock()
		return difficulties, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Difficulty), nil
}

// CategoryByLabel resolves a category label, case-sensitively.
func (c *ReferenceCache) CategoryByLabel(ctx context.Context, label string) (*domain.Category, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Label == label {
			return &categories[i], nil
		}
	}
	return nil, nil
}

// DifficultyByLabel resolves a difficulty label, case-sensitively.
func (c *ReferenceCache) DifficultyByLabel(ctx context.Context, label string) (*domain.Difficulty, error) {
	difficulties, err := c.Difficulties(ctx)
	if err != nil {
		return nil, err
	}
	for i := range difficulties {
		if difficulties[i].Label == label {
			return &difficulties[i], nil
		}
	}
	return nil, nil
}

// Invalidate drops both cached lists, forcing the next read through.
func (c *ReferenceCache) Invalidate() {
	c.mu.Lock()
	c.categories = nil
	c.difficulties = nil
	c.mu.Unlock()
}
