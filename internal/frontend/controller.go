// Package frontend drives the catalog user interface: it fetches the list,
// submits new toys and gates deletes behind a confirmation dialog, rendering
// every change through a View.
package frontend

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"brinquedos/internal/client"
	"brinquedos/internal/models"
)

// ErrBusy is returned by Submit while another submission is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Alert messages shown when the server gives no message of its own.
const (
	MsgListFailed = "Erro ao buscar brinquedos."
	MsgCreated    = "Brinquedo cadastrado com sucesso!"
	MsgDeleted    = "Brinquedo excluído com sucesso!"
)

// CatalogAPI is the subset of the API client the controller needs.
type CatalogAPI interface {
	List(ctx context.Context) ([]models.Toy, error)
	Create(ctx context.Context, req models.CreateToyRequest) (*client.Mutation, error)
	Delete(ctx context.Context, id int64) (*client.Mutation, error)
}

// View renders controller output.
type View interface {
	Render(s Snapshot)
	SetBusy(busy bool)
	Alert(message string)
	ResetForm()
	ShowConfirm(name string)
	HideConfirm()
}

// Form holds the raw text of the submission form.
type Form struct {
	Name           string
	Category       string
	RecommendedAge string
	Price          string
	Description    string
}

// Controller is the client-side state machine over the catalog list.
type Controller struct {
	api    CatalogAPI
	view   View
	dialog *ConfirmDialog

	mu       sync.Mutex
	snapshot Snapshot
	busy     bool
}

// NewController creates a Controller. Nothing is fetched until Refresh.
func NewController(api CatalogAPI, view View) *Controller {
	return &Controller{
		api:    api,
		view:   view,
		dialog: &ConfirmDialog{},
	}
}

// Snapshot returns the last rendered list snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Dialog exposes the confirmation dialog state.
func (c *Controller) Dialog() *ConfirmDialog {
	return c.dialog
}

// Refresh reloads the list. On failure the previous snapshot is rendered again.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	previous := c.snapshot
	c.mu.Unlock()

	c.view.Render(loadingSnapshot())

	toys, err := c.api.List(ctx)
	if err != nil {
		log.Printf("Error fetching toys: %v", err)
		c.view.Alert(alertMessage(err, MsgListFailed))
		c.view.Render(previous)
		return err
	}

	next := listSnapshot(toys)
	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()

	c.view.Render(next)
	return nil
}

// Submit sends the form as a new toy. Blank optional fields are sent as null.
func (c *Controller) Submit(ctx context.Context, form Form) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	c.view.SetBusy(true)
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		c.view.SetBusy(false)
	}()

	res, err := c.api.Create(ctx, form.request())
	if err != nil {
		log.Printf("Error creating toy: %v", err)
		c.view.Alert(alertMessage(err, err.Error()))
		return err
	}

	c.view.ResetForm()
	c.view.Alert(messageOr(res.Message, MsgCreated))
	// A failed reload is alerted by Refresh itself.
	_ = c.Refresh(ctx)
	return nil
}

// RequestDelete asks the user to confirm removing toy.
func (c *Controller) RequestDelete(toy models.Toy) {
	c.dialog.Open(DeleteTarget{ID: toy.ID, Name: toy.Name})
	c.view.ShowConfirm(toy.Name)
}

// ConfirmDelete deletes the pending target, if any. The dialog is closed and
// the list reloaded whether or not the delete succeeded.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	target, ok := c.dialog.Pending()
	if !ok {
		return nil
	}

	res, err := c.api.Delete(ctx, target.ID)
	if err != nil {
		log.Printf("Error deleting toy %d: %v", target.ID, err)
		c.view.Alert(alertMessage(err, err.Error()))
	} else {
		c.view.Alert(messageOr(res.Message, MsgDeleted))
	}

	c.dialog.Close()
	c.view.HideConfirm()
	_ = c.Refresh(ctx)
	return err
}

// CancelDelete drops the pending target without any request.
func (c *Controller) CancelDelete() {
	c.dialog.Close()
	c.view.HideConfirm()
}

func (f Form) request() models.CreateToyRequest {
	return models.CreateToyRequest{
		Name:           field(f.Name),
		Category:       field(f.Category),
		RecommendedAge: field(f.RecommendedAge),
		Price:          field(f.Price),
		Description:    field(f.Description),
	}
}

func field(s string) models.LooseValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.LooseValue{}
	}
	return models.Loose(s)
}

// alertMessage prefers the server's own message.
func alertMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
