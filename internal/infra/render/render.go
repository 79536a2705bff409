// Package render syncs environment variables to the hosting provider's API.
// Every call is best-effort: outcomes are reported as SyncResult values and
// never fail the caller's primary database write.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/filegram/panel/config"
)

const requestTimeout = 15 * time.Second

// SyncResult captures the outcome of one provider call so callers (and tests)
// can observe both success and failure paths explicitly.
type SyncResult struct {
	Key     string
	Created bool // true when the variable had to be created rather than updated
	Err     error
}

// Synced reports whether the provider accepted the change.
func (r SyncResult) Synced() bool { return r.Err == nil }

// Client talks to the hosting provider's env-var management API.
type Client struct {
	apiKey    string
	serviceID string
	baseURL   string
	http      *http.Client
}

// NewClient builds a provider client. A client with missing credentials is
// valid but reports Configured() == false.
func NewClient(cfg config.RenderConfig) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		serviceID: cfg.ServiceID,
		baseURL:   "https://api.render.com/v1",
		http:      &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether sync calls can be attempted at all.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.serviceID != ""
}

// UpsertEnvVar updates the variable on the provider, falling back to a create
// when the update is rejected (variable does not exist yet).
func (c *Client) UpsertEnvVar(ctx context.Context, key, value string) SyncResult {
	if !c.Configured() {
		return SyncResult{Key: key, Err: fmt.Errorf("render: not configured")}
	}

	if err := c.putEnvVar(ctx, key, value); err == nil {
		return SyncResult{Key: key}
	}

	if err := c.postEnvVar(ctx, key, value); err != nil {
		return SyncResult{Key: key, Err: err}
	}
	return SyncResult{Key: key, Created: true}
}

// DeleteEnvVar removes the variable on the provider.
func (c *Client) DeleteEnvVar(ctx context.Context, key string) SyncResult {
	if !c.Configured() {
		return SyncResult{Key: key, Err: fmt.Errorf("render: not configured")}
	}

	endpoint := fmt.Sprintf("%s/services/%s/env-vars/%s", c.baseURL, c.serviceID, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return SyncResult{Key: key, Err: fmt.Errorf("render: build request: %w", err)}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return SyncResult{Key: key, Err: fmt.Errorf("render: delete env var: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return SyncResult{Key: key, Err: fmt.Errorf("render: delete env var: status %d", resp.StatusCode)}
	}
	return SyncResult{Key: key}
}

func (c *Client) putEnvVar(ctx context.Context, key, value string) error {
	payload, _ := json.Marshal(map[string]string{"value": value})
	endpoint := fmt.Sprintf("%s/services/%s/env-vars/%s", c.baseURL, c.serviceID, url.PathEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("render: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("render: update env var: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("render: update env var: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postEnvVar(ctx context.Context, key, value string) error {
	payload, _ := json.Marshal([]map[string]string{{"key": key, "value": value}})
	endpoint := fmt.Sprintf("%s/services/%s/env-vars", c.baseURL, c.serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("render: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("render: create env var: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("render: create env var: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
