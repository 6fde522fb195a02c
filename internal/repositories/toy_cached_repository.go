package repositories

import (
	"context"
	"log"

	"brinquedos/internal/models"
)

// ToyListCache stores the full, ordered result of List.
type ToyListCache interface {
	GetList(ctx context.Context) ([]models.Toy, bool, error)
	SetList(ctx context.Context, toys []models.Toy) error
	Invalidate(ctx context.Context) error
}

// CachedToyRepository wraps another ToyRepository with a read-through list cache.
// Cache failures are logged and the call falls back to the wrapped repository.
type CachedToyRepository struct {
	next  ToyRepository
	cache ToyListCache
}

// NewCachedToyRepository creates a new CachedToyRepository.
func NewCachedToyRepository(next ToyRepository, cache ToyListCache) *CachedToyRepository {
	return &CachedToyRepository{
		next:  next,
		cache: cache,
	}
}

// List serves the cached list when present, otherwise reads through and repopulates.
func (r *CachedToyRepository) List(ctx context.Context) ([]models.Toy, error) {
	toys, ok, err := r.cache.GetList(ctx)
	if err != nil {
		log.Printf("Error reading toy list from cache, falling back to store: %v", err)
	} else if ok {
		return toys, nil
	}

	toys, err = r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetList(ctx, toys); err != nil {
		log.Printf("Failed to populate toy list cache: %v", err)
	}
	return toys, nil
}

// Create inserts through the wrapped repository and drops the cached list.
func (r *CachedToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	if err := r.next.Create(ctx, toy); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes through the wrapped repository and drops the cached list.
func (r *CachedToyRepository) Delete(ctx context.Context, id int64) (*models.Toy, error) {
	toy, err := r.next.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return toy, nil
}

func (r *CachedToyRepository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate toy list cache: %v", err)
	}
}
