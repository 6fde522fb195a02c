package repositories

import (
	"context"
	"errors"
	"fmt"

	"brinquedos/internal/models"

	"gorm.io/gorm"
)

// GORMToyRepository is a GORM implementation of ToyRepository.
type GORMToyRepository struct {
	db *gorm.DB
}

// NewGORMToyRepository creates a new instance of GORMToyRepository.
func NewGORMToyRepository(db *gorm.DB) *GORMToyRepository {
	return &GORMToyRepository{
		db: db,
	}
}

// List retrieves all toys from the database, newest first.
func (r *GORMToyRepository) List(ctx context.Context) ([]models.Toy, error) {
	toys := []models.Toy{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&toys).Error; err != nil {
		return nil, fmt.Errorf("failed to list toys: %w", err)
	}
	return toys, nil
}

// Create inserts a new toy. GORM writes the generated ID and CreatedAt back into toy.
func (r *GORMToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	if err := r.db.WithContext(ctx).Create(toy).Error; err != nil {
		return fmt.Errorf("failed to create toy: %w", err)
	}
	return nil
}

// Delete removes a toy by its ID and returns the deleted row.
// The read and the delete run in one transaction so the returned row is the one removed.
func (r *GORMToyRepository) Delete(ctx context.Context, id int64) (*models.Toy, error) {
	var toy models.Toy
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&toy, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrToyNotFound
			}
			return fmt.Errorf("failed to get toy %d: %w", id, err)
		}
		res := tx.Delete(&models.Toy{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete toy %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrToyNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &toy, nil
}
