// Package catalog talks to the ExerciseDB API (RapidAPI) and maps its
// records onto the domain Exercise type. Fetch failures surface as an empty
// result plus an error: callers treat empty as "no data", never as a crash.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Record is an exercise as the ExerciseDB API returns it.
type Record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
}

// Client is an ExerciseDB API client. A zero API key puts the client in
// offline mode: every fetch returns the built-in seed exercises.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	http    *http.Client
}

// NewClient creates a catalog client for the given RapidAPI credentials.
func NewClient(baseURL, apiKey string) *Client {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		host:    host,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Offline reports whether the client has no API key configured.
func (c *Client) Offline() bool { return c.apiKey == "" }

// ListBodyParts fetches the list of body parts (categories).
func (c *Client) ListBodyParts(ctx context.Context) ([]string, error) {
	if c.Offline() {
		return seedBodyParts(), nil
	}
	var parts []string
	if err := c.get(ctx, "/exercises/bodyPartList", &parts); err != nil {
		return nil, fmt.Errorf("fetching body parts: %w", err)
	}
	return parts, nil
}

// ExercisesByBodyPart fetches exercise records for one body part.
func (c *Client) ExercisesByBodyPart(ctx context.Context, bodyPart string) ([]Record, error) {
	if c.Offline() {
		return seedByBodyPart(bodyPart), nil
	}
	var records []Record
	path := "/exercises/bodyPart/" + url.PathEscape(bodyPart)
	if err := c.get(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("fetching exercises for %q: %w", bodyPart, err)
	}
	return records, nil
}

// SearchByName fetches exercise records whose name matches the query.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Record, error) {
	if c.Offline() {
		return seedByName(query), nil
	}
	var records []Record
	path := "/exercises/name/" + url.PathEscape(query)
	if err := c.get(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("searching exercises for %q: %w", query, err)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
