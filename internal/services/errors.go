package services

import "fmt"

// ValidationError is returned when input is rejected before any store call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingFields = &ValidationError{Message: "Campos obrigatórios: nome, categoria e preco"}
	ErrInvalidPrice  = &ValidationError{Message: "Preço inválido"}
	ErrInvalidID     = &ValidationError{Message: "ID inválido"}
)

// StoreError wraps a failure reported by the data store.
// Message is the user-facing summary, Err carries the store's own detail.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
