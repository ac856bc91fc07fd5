package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymbro/internal/models"
)

// DataSource abstracts the data layer for MCP tools. The stdio binary talks
// to a running server over its REST API; tests substitute a fake.
type DataSource interface {
	History(ctx context.Context, limit int) ([]models.WorkoutSession, error)
	Templates(ctx context.Context) ([]models.WorkoutTemplate, error)
}

// HTTPClient is a DataSource backed by a GymBro server's REST API
// (typically reached over the tailnet).
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient creates a REST-backed DataSource.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

var _ DataSource = (*HTTPClient)(nil)

// History fetches finished sessions, newest first.
func (c *HTTPClient) History(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	var sessions []models.WorkoutSession
	err := c.get(ctx, "/api/v1/history?limit="+strconv.Itoa(limit), &sessions)
	return sessions, err
}

// Templates fetches the user's workout templates.
func (c *HTTPClient) Templates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	var templates []models.WorkoutTemplate
	err := c.get(ctx, "/api/v1/templates", &templates)
	return templates, err
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
