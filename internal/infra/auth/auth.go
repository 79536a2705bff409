// Package auth resolves bearer tokens against the external auth provider.
// Identity verification and the user_roles lookup are fully delegated; this
// package only speaks the provider's REST API.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/filegram/panel/config"
)

// Role is the caller's dashboard role as stored in the provider's user_roles
// table. Owner is a superset of admin.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleNone  Role = ""
)

// Satisfies reports whether the role meets the given requirement.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleOwner:
		return r == RoleOwner
	case RoleAdmin:
		return r == RoleOwner || r == RoleAdmin
	default:
		return true
	}
}

// Identity describes a resolved caller.
type Identity struct {
	UserID string
	Role   Role
}

// IsOwner is a convenience for the handlers that mask data per role.
func (i Identity) IsOwner() bool { return i.Role == RoleOwner }

var (
	// ErrUnauthenticated covers missing, malformed and rejected tokens.
	ErrUnauthenticated = errors.New("auth: invalid or expired token")

	// ErrNotConfigured is returned when the provider URL is absent.
	ErrNotConfigured = errors.New("auth: provider not configured")
)

const requestTimeout = 10 * time.Second

// Client talks to the auth provider's REST API.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewClient builds a provider client from config.
func NewClient(cfg config.AuthConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Resolve validates the bearer token and fetches the caller's role. A caller
// with no user_roles row resolves to RoleNone; only the role lookup failing
// outright is an error.
func (c *Client) Resolve(ctx context.Context, token string) (*Identity, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := c.verifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	role, err := c.lookupRole(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	return &Identity{UserID: userID, Role: role}, nil
}

func (c *Client) verifyToken(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("auth: build request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth: provider returned status %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("auth: decode user response: %w", err)
	}
	if body.ID == "" {
		return "", ErrUnauthenticated
	}
	return body.ID, nil
}

func (c *Client) lookupRole(ctx context.Context, token, userID string) (Role, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/user_roles?user_id=eq.%s&select=role",
		c.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return RoleNone, fmt.Errorf("auth: build request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return RoleNone, fmt.Errorf("auth: lookup role: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RoleNone, fmt.Errorf("auth: role lookup returned status %d", resp.StatusCode)
	}

	var rows []struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return RoleNone, fmt.Errorf("auth: decode role response: %w", err)
	}
	if len(rows) == 0 {
		return RoleNone, nil
	}

	switch rows[0].Role {
	case string(RoleOwner):
		return RoleOwner, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return RoleNone, nil
	}
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
}
