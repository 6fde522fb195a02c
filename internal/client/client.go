// Package client is a typed HTTP client for the toy catalog API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"brinquedos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a request when the context carries no deadline.
const DefaultTimeout = 10 * time.Second

// APIError is a response with success=false or a non-2xx status.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	case e.Message != "":
		return e.Message
	case e.Detail != "":
		return e.Detail
	default:
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
}

// Mutation is the result of a successful create or delete.
type Mutation struct {
	Message string
	Toy     models.Toy
}

// envelope is the JSON shape shared by every API response.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Total     int             `json:"total"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Client talks to a catalog server rooted at BaseURL.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New creates a Client. A non-positive timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Health calls GET /api/test and returns the server message.
func (c *Client) Health(ctx context.Context) (string, error) {
	env, err := c.do(ctx, fiber.MethodGet, "/api/test", nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// List returns every toy, newest first.
func (c *Client) List(ctx context.Context) ([]models.Toy, error) {
	env, err := c.do(ctx, fiber.MethodGet, "/api/brinquedos", nil)
	if err != nil {
		return nil, err
	}

	toys := []models.Toy{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &toys); err != nil {
			return nil, fmt.Errorf("failed to decode toy list: %w", err)
		}
	}
	return toys, nil
}

// Create submits a new toy.
func (c *Client) Create(ctx context.Context, req models.CreateToyRequest) (*Mutation, error) {
	env, err := c.do(ctx, fiber.MethodPost, "/api/brinquedos", req)
	if err != nil {
		return nil, err
	}
	return decodeMutation(env)
}

// Delete removes the toy with the given id.
func (c *Client) Delete(ctx context.Context, id int64) (*Mutation, error) {
	env, err := c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/api/brinquedos/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeMutation(env)
}

func decodeMutation(env *envelope) (*Mutation, error) {
	m := &Mutation{Message: env.Message}
	if err := json.Unmarshal(env.Data, &m.Toy); err != nil {
		return nil, fmt.Errorf("failed to decode toy: %w", err)
	}
	return m, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("invalid request %s %s: %w", method, path, err)
	}
	agent.Timeout(timeout)
	if body != nil {
		agent.JSON(body)
	}

	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, errs[0])
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices || (decodeErr == nil && !env.Success) {
		apiErr := &APIError{Status: status, Message: env.Message, Detail: env.Error}
		if decodeErr != nil {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode %s %s response: %w", method, path, decodeErr)
	}
	return &env, nil
}
