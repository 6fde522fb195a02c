package repositories

import (
	"context"
	"errors"

	"brinquedos/internal/models"
)

// ErrToyNotFound is returned when no toy matches the requested ID.
var ErrToyNotFound = errors.New("toy not found")

// ToyRepository defines the interface for toy data access.
// Implementations own all persisted state; callers only get copies.
type ToyRepository interface {
	// List returns every toy, newest first.
	List(ctx context.Context) ([]models.Toy, error)
	// Create inserts the toy and fills in the store-assigned ID and CreatedAt.
	Create(ctx context.Context, toy *models.Toy) error
	// Delete removes the toy and returns it as it was stored.
	Delete(ctx context.Context, id int64) (*models.Toy, error)
}
