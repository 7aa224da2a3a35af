// internal/infrastructure/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/config"
	"github.com/your-org/ecommerce-storefront/internal/pkg/auth"
)

// DefaultErrorMessage is used when a failed response carries no error text
const DefaultErrorMessage = "API call failed"

// ErrTransport wraps failures to reach the backend at all
var ErrTransport = errors.New("network request failed")

// Caller issues one JSON request against the backend.
// It is the only way the rest of the client talks to the network.
type Caller interface {
	Call(ctx context.Context, method, path string, body, out any) error
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the REST client for the e-commerce backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger

	mu          sync.RWMutex
	tokenSource func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(fn func() string) Option {
	return func(c *Client) {
		c.tokenSource = fn
	}
}

// New creates a client from configuration
func New(cfg *config.Config, logger *logrus.Logger, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout})}, opts...)
	return NewClient(cfg.API.BaseURL, logger, opts...)
}

// NewClient creates a client for baseURL
func NewClient(baseURL string, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokenSource sets where bearer tokens come from after construction
func (c *Client) SetTokenSource(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenSource = fn
}

// Call sends body (JSON encoded when non-nil) to path and decodes a successful
// response into out when out is non-nil. Any non-2xx status yields *APIError.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("API Error")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("API Error")
		return fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			RequestID:  requestID,
		}
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"error":  apiErr.Message,
		}).Error("API Error")
		return apiErr
	}

	log.WithField("status", resp.StatusCode).Debug("API call completed")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.mu.RLock()
	tokenSource := c.tokenSource
	c.mu.RUnlock()

	if tokenSource != nil {
		if token := tokenSource(); token != "" {
			req.Header.Set("Authorization", auth.BearerHeader(token))
		}
	}
}

func errorMessage(data []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return DefaultErrorMessage
}

// Pathf formats an endpoint path, escaping every argument as a path segment
func Pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return fmt.Sprintf(format, escaped...)
}

// Message returns the user-facing description of err, or fallback when err has none
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	if errors.Is(err, ErrTransport) {
		return "Unable to reach the server"
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
