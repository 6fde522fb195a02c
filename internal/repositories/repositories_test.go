package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"brinquedos/internal/models"
	"brinquedos/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

// newSQLiteRepository opens a private in-memory SQLite database per test.
func newSQLiteRepository(t *testing.T) repositories.ToyRepository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Toy{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return repositories.NewGORMToyRepository(db)
}

func newMemDBRepository(t *testing.T) repositories.ToyRepository {
	repo, err := repositories.NewMemDBToyRepository()
	require.NoError(t, err)
	return repo
}

// Both implementations must satisfy the same contract.
func TestToyRepositoryContract(t *testing.T) {
	impls := map[string]func(t *testing.T) repositories.ToyRepository{
		"gorm-sqlite": newSQLiteRepository,
		"memdb":       newMemDBRepository,
	}

	for name, newRepo := range impls {
		t.Run(name, func(t *testing.T) {
			t.Run("list on empty store", func(t *testing.T) {
				repo := newRepo(t)
				toys, err := repo.List(context.Background())
				assert.NoError(t, err)
				assert.NotNil(t, toys)
				assert.Len(t, toys, 0)
			})

			t.Run("create assigns id and created_at", func(t *testing.T) {
				repo := newRepo(t)
				toy := &models.Toy{Name: "Urso de Pelúcia", Category: "Pelúcia", Price: 29.9, Description: strPtr("Macio")}
				require.NoError(t, repo.Create(context.Background(), toy))
				assert.NotZero(t, toy.ID)
				assert.False(t, toy.CreatedAt.IsZero())

				toys, err := repo.List(context.Background())
				require.NoError(t, err)
				require.Len(t, toys, 1)
				assert.Equal(t, toy.ID, toys[0].ID)
				assert.Equal(t, "Urso de Pelúcia", toys[0].Name)
				assert.Equal(t, 29.9, toys[0].Price)
				assert.Nil(t, toys[0].RecommendedAge)
				require.NotNil(t, toys[0].Description)
				assert.Equal(t, "Macio", *toys[0].Description)
			})

			t.Run("ids are unique and list is newest first", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()
				first := &models.Toy{Name: "Bola", Category: "Esportes", Price: 10}
				second := &models.Toy{Name: "Pião", Category: "Clássicos", Price: 5}
				require.NoError(t, repo.Create(ctx, first))
				require.NoError(t, repo.Create(ctx, second))
				assert.NotEqual(t, first.ID, second.ID)

				toys, err := repo.List(ctx)
				require.NoError(t, err)
				require.Len(t, toys, 2)
				assert.Equal(t, second.ID, toys[0].ID)
				assert.Equal(t, first.ID, toys[1].ID)
			})

			t.Run("delete returns the removed toy", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()
				toy := &models.Toy{Name: "Carrinho", Category: "Veículos", Price: 15, RecommendedAge: strPtr("3")}
				require.NoError(t, repo.Create(ctx, toy))

				deleted, err := repo.Delete(ctx, toy.ID)
				require.NoError(t, err)
				assert.Equal(t, toy.ID, deleted.ID)
				assert.Equal(t, "Carrinho", deleted.Name)
				require.NotNil(t, deleted.RecommendedAge)
				assert.Equal(t, "3", *deleted.RecommendedAge)

				toys, err := repo.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, toys)
			})

			t.Run("delete of unknown id", func(t *testing.T) {
				repo := newRepo(t)
				deleted, err := repo.Delete(context.Background(), 999999)
				assert.Nil(t, deleted)
				assert.True(t, errors.Is(err, repositories.ErrToyNotFound))
			})

			t.Run("delete twice", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()
				toy := &models.Toy{Name: "Boneca", Category: "Bonecas", Price: 49.9}
				require.NoError(t, repo.Create(ctx, toy))

				_, err := repo.Delete(ctx, toy.ID)
				require.NoError(t, err)
				_, err = repo.Delete(ctx, toy.ID)
				assert.ErrorIs(t, err, repositories.ErrToyNotFound)
			})
		})
	}
}
