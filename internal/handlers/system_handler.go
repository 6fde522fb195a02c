package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Routes lists every API route, in the order reported by NotFound.
var Routes = []string{
	"GET /api/test",
	"GET /api/brinquedos",
	"POST /api/brinquedos",
	"DELETE /api/brinquedos/:id",
}

// HandleHealth answers GET /api/test.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "API da Loja de Brinquedos funcionando!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound is the catch-all registered after every route and the static files.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Rota não encontrada",
		"routes":  Routes,
	})
}

// ErrorHandler renders errors that escape a handler, including recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code == fiber.StatusNotFound {
		return NotFound(c)
	}

	log.Printf("Error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
