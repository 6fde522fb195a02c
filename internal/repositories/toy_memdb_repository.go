package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"brinquedos/internal/models"

	"github.com/hashicorp/go-memdb"
)

const toyTable = "brinquedos"

// MemDBToyRepository is an in-memory implementation of ToyRepository backed by go-memdb.
type MemDBToyRepository struct {
	db     *memdb.MemDB
	lastID atomic.Int64
	now    func() time.Time
}

// NewMemDBToyRepository creates a new, empty MemDBToyRepository.
func NewMemDBToyRepository() (*MemDBToyRepository, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			toyTable: {
				Name: toyTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &MemDBToyRepository{db: db, now: time.Now}, nil
}

// List returns all toys, newest first.
func (r *MemDBToyRepository) List(ctx context.Context) ([]models.Toy, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(toyTable, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to list toys: %w", err)
	}

	toys := []models.Toy{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		toys = append(toys, obj.(models.Toy))
	}
	sort.SliceStable(toys, func(i, j int) bool {
		if toys[i].CreatedAt.Equal(toys[j].CreatedAt) {
			return toys[i].ID > toys[j].ID
		}
		return toys[i].CreatedAt.After(toys[j].CreatedAt)
	})
	return toys, nil
}

// Create stores a copy of toy after assigning its ID and CreatedAt.
func (r *MemDBToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	toy.ID = r.lastID.Add(1)
	toy.CreatedAt = r.now().UTC()

	txn := r.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(toyTable, *toy); err != nil {
		return fmt.Errorf("failed to create toy: %w", err)
	}
	txn.Commit()
	return nil
}

// Delete removes the toy with the given ID and returns it.
func (r *MemDBToyRepository) Delete(ctx context.Context, id int64) (*models.Toy, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(toyTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get toy %d: %w", id, err)
	}
	if raw == nil {
		return nil, ErrToyNotFound
	}
	toy := raw.(models.Toy)
	if err := txn.Delete(toyTable, toy); err != nil {
		return nil, fmt.Errorf("failed to delete toy %d: %w", id, err)
	}
	txn.Commit()
	return &toy, nil
}
