package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"brinquedos/internal/models"
	"brinquedos/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Event types published after successful mutations.
const (
	EventToyCreated = "brinquedo.criado"
	EventToyDeleted = "brinquedo.excluido"
)

// EventPublisher delivers catalog events to interested consumers.
type EventPublisher interface {
	PublishToyEvent(ctx context.Context, eventType string, toy models.Toy) error
}

// toyInput is a create request after trimming, ready for validation.
type toyInput struct {
	Name           string `validate:"required"`
	Category       string `validate:"required"`
	Price          string `validate:"required,positive_number"`
	RecommendedAge string
	Description    string
}

// ToyService handles business logic related to toys.
type ToyService struct {
	repo      repositories.ToyRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewToyService creates a new ToyService. publisher may be nil.
func NewToyService(repo repositories.ToyRepository, publisher EventPublisher) *ToyService {
	validate := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("positive_number", isPositiveNumber)

	return &ToyService{
		repo:      repo,
		publisher: publisher,
		validate:  validate,
	}
}

// ListToys retrieves all toys, newest first.
func (s *ToyService) ListToys(ctx context.Context) ([]models.Toy, error) {
	toys, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StoreError{Message: "Erro ao buscar brinquedos", Err: err}
	}
	if toys == nil {
		toys = []models.Toy{}
	}
	return toys, nil
}

// CreateToy validates the request and inserts a new toy.
// A missing field is reported before an invalid price.
func (s *ToyService) CreateToy(ctx context.Context, req models.CreateToyRequest) (*models.Toy, error) {
	input := toyInput{
		Name:           strings.TrimSpace(req.Name.Text),
		Category:       strings.TrimSpace(req.Category.Text),
		Price:          strings.TrimSpace(req.Price.Text),
		RecommendedAge: strings.TrimSpace(req.RecommendedAge.Text),
		Description:    strings.TrimSpace(req.Description.Text),
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	price, _ := strconv.ParseFloat(input.Price, 64)
	toy := &models.Toy{
		Name:           input.Name,
		Category:       input.Category,
		RecommendedAge: optional(input.RecommendedAge),
		Price:          price,
		Description:    optional(input.Description),
	}

	if err := s.repo.Create(ctx, toy); err != nil {
		return nil, &StoreError{Message: "Erro ao cadastrar brinquedo", Err: err}
	}

	s.publish(ctx, EventToyCreated, *toy)
	return toy, nil
}

// DeleteToy parses the raw path id and removes the matching toy.
func (s *ToyService) DeleteToy(ctx context.Context, rawID string) (*models.Toy, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, ErrInvalidID
	}

	toy, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrToyNotFound) {
			return nil, err
		}
		return nil, &StoreError{Message: "Erro ao excluir brinquedo", Err: err}
	}

	s.publish(ctx, EventToyDeleted, *toy)
	return toy, nil
}

func (s *ToyService) validateInput(input toyInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidPrice
}

func (s *ToyService) publish(ctx context.Context, eventType string, toy models.Toy) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishToyEvent(ctx, eventType, toy); err != nil {
		log.Printf("Warning: Failed to publish %s event for toy %d: %v", eventType, toy.ID, err)
	}
}

// isPositiveNumber accepts finite decimal numbers greater than zero.
func isPositiveNumber(fl validator.FieldLevel) bool {
	price, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return price > 0
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
