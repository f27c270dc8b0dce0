// Package client is a typed HTTP client for the moodlit server API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

// maxErrorBody caps how much of a failed response is kept in StatusError
const maxErrorBody = 4096

// StatusError is returned when the server responds with a non-2xx status
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server returned %d %s: %s", e.Status, http.StatusText(e.Status), e.Body)
}

// Client talks to a moodlit server
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: constants.DefaultClientTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return nil
}

// SaveMood calls POST /api/mood. Any 2xx status is success and the response
// body is not inspected.
func (c *Client) SaveMood(ctx context.Context, req models.MoodRequest) error {
	return c.do(ctx, http.MethodPost, constants.PathMood, req, nil)
}

// ListMoods calls GET /api/moods and returns entries newest first
func (c *Client) ListMoods(ctx context.Context, limit int) ([]models.MoodEntry, error) {
	path := constants.PathMoods
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var out []models.MoodEntry
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Strategies calls GET /api/strategies
func (c *Client) Strategies(ctx context.Context) ([]models.CopingStrategy, error) {
	var out []models.CopingStrategy
	err := c.do(ctx, http.MethodGet, constants.PathStrategies, nil, &out)
	return out, err
}

// Health calls GET /healthz
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, constants.PathHealth, nil, nil)
}
