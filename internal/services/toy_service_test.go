package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"brinquedos/internal/models"
	"brinquedos/internal/repositories"
	"brinquedos/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockToyRepository is a mock implementation of repositories.ToyRepository
type MockToyRepository struct {
	mock.Mock
}

func (m *MockToyRepository) List(ctx context.Context) ([]models.Toy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Toy), args.Error(1)
}

func (m *MockToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	args := m.Called(ctx, toy)
	if args.Error(0) == nil {
		toy.ID = 42
	}
	return args.Error(0)
}

func (m *MockToyRepository) Delete(ctx context.Context, id int64) (*models.Toy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Toy), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishToyEvent(ctx context.Context, eventType string, toy models.Toy) error {
	args := m.Called(ctx, eventType, toy)
	return args.Error(0)
}

var ctx = context.Background()

func TestToyService_ListToys(t *testing.T) {
	mockRepo := new(MockToyRepository)
	service := services.NewToyService(mockRepo, nil)

	expected := []models.Toy{
		{ID: 2, Name: "Pião", Category: "Clássicos", Price: 5},
		{ID: 1, Name: "Bola", Category: "Esportes", Price: 10},
	}
	mockRepo.On("List", ctx).Return(expected, nil).Once()

	toys, err := service.ListToys(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, toys)
	mockRepo.AssertExpectations(t)
}

func TestToyService_ListToysNilBecomesEmpty(t *testing.T) {
	mockRepo := new(MockToyRepository)
	service := services.NewToyService(mockRepo, nil)

	mockRepo.On("List", ctx).Return(nil, nil).Once()

	toys, err := service.ListToys(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, toys)
	assert.Len(t, toys, 0)
}

func TestToyService_ListToysStoreError(t *testing.T) {
	mockRepo := new(MockToyRepository)
	service := services.NewToyService(mockRepo, nil)

	mockRepo.On("List", ctx).Return(nil, fmt.Errorf("connection refused")).Once()

	toys, err := service.ListToys(ctx)
	assert.Nil(t, toys)
	var storeErr *services.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Erro ao buscar brinquedos", storeErr.Message)
	assert.Equal(t, "connection refused", storeErr.Err.Error())
}

func TestToyService_CreateToy(t *testing.T) {
	mockRepo := new(MockToyRepository)
	publisher := new(MockPublisher)
	service := services.NewToyService(mockRepo, publisher)

	req := models.CreateToyRequest{
		Name:           models.Loose("  Urso de Pelúcia "),
		Category:       models.Loose("Pelúcia"),
		RecommendedAge: models.Loose(" "),
		Price:          models.Loose("29.9"),
		Description:    models.Loose(" Macio e fofinho "),
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(toy *models.Toy) bool {
		return toy.Name == "Urso de Pelúcia" && toy.Category == "Pelúcia" && toy.Price == 29.9 &&
			toy.RecommendedAge == nil && toy.Description != nil && *toy.Description == "Macio e fofinho"
	})).Return(nil).Once()
	publisher.On("PublishToyEvent", ctx, services.EventToyCreated, mock.AnythingOfType("models.Toy")).Return(nil).Once()

	toy, err := service.CreateToy(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), toy.ID)
	assert.Equal(t, 29.9, toy.Price)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestToyService_CreateToyValidation(t *testing.T) {
	valid := func() models.CreateToyRequest {
		return models.CreateToyRequest{
			Name:     models.Loose("Bola"),
			Category: models.Loose("Esportes"),
			Price:    models.Loose("10"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *models.CreateToyRequest)
		wantErr error
	}{
		{"missing name", func(r *models.CreateToyRequest) { r.Name = models.LooseValue{} }, services.ErrMissingFields},
		{"blank name", func(r *models.CreateToyRequest) { r.Name = models.Loose("   ") }, services.ErrMissingFields},
		{"missing category", func(r *models.CreateToyRequest) { r.Category = models.LooseValue{} }, services.ErrMissingFields},
		{"missing price", func(r *models.CreateToyRequest) { r.Price = models.LooseValue{} }, services.ErrMissingFields},
		{"missing name wins over bad price", func(r *models.CreateToyRequest) {
			r.Name = models.Loose("")
			r.Price = models.Loose("-3")
		}, services.ErrMissingFields},
		{"zero price", func(r *models.CreateToyRequest) { r.Price = models.Loose("0") }, services.ErrInvalidPrice},
		{"negative price", func(r *models.CreateToyRequest) { r.Price = models.Loose("-1.5") }, services.ErrInvalidPrice},
		{"non numeric price", func(r *models.CreateToyRequest) { r.Price = models.Loose("barato") }, services.ErrInvalidPrice},
		{"NaN price", func(r *models.CreateToyRequest) { r.Price = models.Loose("NaN") }, services.ErrInvalidPrice},
		{"infinite price", func(r *models.CreateToyRequest) { r.Price = models.Loose("Inf") }, services.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockToyRepository)
			service := services.NewToyService(mockRepo, nil)

			req := valid()
			tt.mutate(&req)

			toy, err := service.CreateToy(ctx, req)
			assert.Nil(t, toy)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestToyService_CreateToyStoreError(t *testing.T) {
	mockRepo := new(MockToyRepository)
	publisher := new(MockPublisher)
	service := services.NewToyService(mockRepo, publisher)

	req := models.CreateToyRequest{Name: models.Loose("Bola"), Category: models.Loose("Esportes"), Price: models.Loose("10")}
	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("duplicate key")).Once()

	toy, err := service.CreateToy(ctx, req)
	assert.Nil(t, toy)
	var storeErr *services.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Erro ao cadastrar brinquedo", storeErr.Message)
	publisher.AssertNotCalled(t, "PublishToyEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestToyService_CreateToyPublishFailureIsIgnored(t *testing.T) {
	mockRepo := new(MockToyRepository)
	publisher := new(MockPublisher)
	service := services.NewToyService(mockRepo, publisher)

	req := models.CreateToyRequest{Name: models.Loose("Bola"), Category: models.Loose("Esportes"), Price: models.Loose("10")}
	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("PublishToyEvent", ctx, services.EventToyCreated, mock.Anything).Return(fmt.Errorf("channel closed")).Once()

	toy, err := service.CreateToy(ctx, req)
	assert.NoError(t, err)
	assert.NotNil(t, toy)
	publisher.AssertExpectations(t)
}

func TestToyService_DeleteToy(t *testing.T) {
	mockRepo := new(MockToyRepository)
	publisher := new(MockPublisher)
	service := services.NewToyService(mockRepo, publisher)

	deleted := &models.Toy{ID: 7, Name: "Bola", Category: "Esportes", Price: 10}
	mockRepo.On("Delete", ctx, int64(7)).Return(deleted, nil).Once()
	publisher.On("PublishToyEvent", ctx, services.EventToyDeleted, *deleted).Return(nil).Once()

	toy, err := service.DeleteToy(ctx, "7")
	assert.NoError(t, err)
	assert.Equal(t, deleted, toy)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestToyService_DeleteToyInvalidID(t *testing.T) {
	for _, raw := range []string{"abc", "", "1.5", "12abc", "9223372036854775808"} {
		t.Run(raw, func(t *testing.T) {
			mockRepo := new(MockToyRepository)
			service := services.NewToyService(mockRepo, nil)

			toy, err := service.DeleteToy(ctx, raw)
			assert.Nil(t, toy)
			assert.ErrorIs(t, err, services.ErrInvalidID)
			mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestToyService_DeleteToyNotFound(t *testing.T) {
	mockRepo := new(MockToyRepository)
	service := services.NewToyService(mockRepo, nil)

	mockRepo.On("Delete", ctx, int64(999999)).Return(nil, repositories.ErrToyNotFound).Once()

	toy, err := service.DeleteToy(ctx, "999999")
	assert.Nil(t, toy)
	assert.ErrorIs(t, err, repositories.ErrToyNotFound)
	var storeErr *services.StoreError
	assert.False(t, errors.As(err, &storeErr))
}

func TestToyService_DeleteToyStoreError(t *testing.T) {
	mockRepo := new(MockToyRepository)
	service := services.NewToyService(mockRepo, nil)

	mockRepo.On("Delete", ctx, int64(3)).Return(nil, fmt.Errorf("timeout")).Once()

	_, err := service.DeleteToy(ctx, "3")
	var storeErr *services.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Erro ao excluir brinquedo", storeErr.Message)
}
