package handlers

import (
	"context"
	"errors"
	"log"

	"brinquedos/internal/models"
	"brinquedos/internal/repositories"
	"brinquedos/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ToyCatalog is the service contract the handler depends on.
type ToyCatalog interface {
	ListToys(ctx context.Context) ([]models.Toy, error)
	CreateToy(ctx context.Context, req models.CreateToyRequest) (*models.Toy, error)
	DeleteToy(ctx context.Context, rawID string) (*models.Toy, error)
}

// ToyHandler handles HTTP requests for toys.
type ToyHandler struct {
	service ToyCatalog
}

// NewToyHandler creates a new ToyHandler.
func NewToyHandler(service ToyCatalog) *ToyHandler {
	return &ToyHandler{
		service: service,
	}
}

// RegisterRoutes registers the toy routes under router.
func (h *ToyHandler) RegisterRoutes(router fiber.Router) {
	toyRoutes := router.Group("/brinquedos")
	toyRoutes.Get("/", h.HandleListToys)
	toyRoutes.Post("/", h.HandleCreateToy)
	toyRoutes.Delete("/:id", h.HandleDeleteToy)
}

// HandleListToys returns every toy, newest first.
func (h *ToyHandler) HandleListToys(c *fiber.Ctx) error {
	log.Println("Listing toys...")

	toys, err := h.service.ListToys(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"total":   len(toys),
		"data":    toys,
	})
}

// HandleCreateToy validates and stores a new toy.
func (h *ToyHandler) HandleCreateToy(c *fiber.Ctx) error {
	var req models.CreateToyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create toy request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Corpo da requisição inválido",
			"error":   err.Error(),
		})
	}

	log.Printf("Creating toy: nome=%q categoria=%q preco=%q", req.Name.Text, req.Category.Text, req.Price.Text)

	toy, err := h.service.CreateToy(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Brinquedo cadastrado com sucesso!",
		"data":    toy,
	})
}

// HandleDeleteToy removes the toy named by the :id path parameter.
func (h *ToyHandler) HandleDeleteToy(c *fiber.Ctx) error {
	rawID := c.Params("id")
	log.Printf("Deleting toy ID: %s", rawID)

	toy, err := h.service.DeleteToy(c.UserContext(), rawID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Brinquedo excluído com sucesso!",
		"data":    toy,
	})
}

// respondError maps the catalog error taxonomy onto HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": validationErr.Message,
		})
	case errors.Is(err, repositories.ErrToyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Brinquedo não encontrado",
		})
	case errors.As(err, &storeErr):
		log.Printf("%s: %v", storeErr.Message, storeErr.Err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": storeErr.Message,
			"error":   storeErr.Err.Error(),
		})
	default:
		log.Printf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}
