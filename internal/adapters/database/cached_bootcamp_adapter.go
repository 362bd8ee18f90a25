package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
)

// CachedBootcampAdapter wraps a BootcampRepository with read caching. Writes
// pass through and invalidate the affected entry so mutations stay visible.
type CachedBootcampAdapter struct {
	adapter repositories.BootcampRepository
	cache   providers.CacheProvider
}

// NewCachedBootcampAdapter creates a new cached bootcamp adapter
func NewCachedBootcampAdapter(adapter repositories.BootcampRepository, cache providers.CacheProvider) repositories.BootcampRepository {
	return &CachedBootcampAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	bootcampByIDTTL = 300
)

func bootcampCacheKey(id string) string {
	return fmt.Sprintf("bootcamp:%s", id)
}

// GetByID retrieves a bootcamp by ID with caching
func (a *CachedBootcampAdapter) GetByID(ctx context.Context, id string) (*entities.Bootcamp, error) {
	cacheKey := bootcampCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var bootcamp entities.Bootcamp
		if err := json.Unmarshal(cached, &bootcamp); err == nil {
			return &bootcamp, nil
		}
		log.Warn().Str("bootcamp_id", id).Msg("failed to unmarshal cached bootcamp")
	}

	bootcamp, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(bootcamp); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, bootcampByIDTTL); err != nil {
			log.Warn().Err(err).Str("bootcamp_id", id).Msg("failed to cache bootcamp")
		}
	}

	return bootcamp, nil
}

// Create passes through; there is nothing cached for a new id yet.
func (a *CachedBootcampAdapter) Create(ctx context.Context, bootcamp *entities.Bootcamp) error {
	return a.adapter.Create(ctx, bootcamp)
}

// FindByOwner passes through. The duplicate-publish check must always see the
// store, never a stale cache entry.
func (a *CachedBootcampAdapter) FindByOwner(ctx context.Context, ownerID string) (*entities.Bootcamp, error) {
	return a.adapter.FindByOwner(ctx, ownerID)
}

// Update writes through and drops the cached entry
func (a *CachedBootcampAdapter) Update(ctx context.Context, bootcamp *entities.Bootcamp) error {
	if err := a.adapter.Update(ctx, bootcamp); err != nil {
		return err
	}
	a.invalidate(ctx, bootcamp.ID)
	return nil
}

// UpdatePhoto writes through and drops the cached entry
func (a *CachedBootcampAdapter) UpdatePhoto(ctx context.Context, id, filename string) error {
	if err := a.adapter.UpdatePhoto(ctx, id, filename); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// Delete writes through and drops the cached entry
func (a *CachedBootcampAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// List passes through; list results are cheap relative to staleness risk.
func (a *CachedBootcampAdapter) List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error) {
	return a.adapter.List(ctx, filter)
}

// FindWithin passes through; radius results depend on a float center and do
// not key well.
func (a *CachedBootcampAdapter) FindWithin(ctx context.Context, center geo.Point, radiusRadians float64) ([]*entities.Bootcamp, error) {
	return a.adapter.FindWithin(ctx, center, radiusRadians)
}

func (a *CachedBootcampAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, bootcampCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("bootcamp_id", id).Msg("failed to invalidate cached bootcamp")
	}
}
