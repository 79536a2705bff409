package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubResolver struct {
	identity *auth.Identity
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*auth.Identity, error) {
	return s.identity, s.err
}

func authTestApp(resolver IdentityResolver, required auth.Role) *fiber.App {
	app := fiber.New()
	app.Use(Authenticate(resolver, zap.NewNop()))
	app.Use(RequireRole(required))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": Identity(c).UserID})
	})
	return app
}

func TestAuthenticateMissingHeader(t *testing.T) {
	app := authTestApp(&stubResolver{}, auth.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthenticateRejectedToken(t *testing.T) {
	app := authTestApp(&stubResolver{err: auth.ErrUnauthenticated}, auth.RoleAdmin)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer expired")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       auth.Role
		required   auth.Role
		wantStatus int
	}{
		{"owner passes owner gate", auth.RoleOwner, auth.RoleOwner, fiber.StatusOK},
		{"owner passes admin gate", auth.RoleOwner, auth.RoleAdmin, fiber.StatusOK},
		{"admin passes admin gate", auth.RoleAdmin, auth.RoleAdmin, fiber.StatusOK},
		{"admin blocked from owner gate", auth.RoleAdmin, auth.RoleOwner, fiber.StatusForbidden},
		{"no role blocked", auth.RoleNone, auth.RoleAdmin, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{identity: &auth.Identity{UserID: "u1", Role: tt.role}}
			app := authTestApp(resolver, tt.required)

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer token")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
		{"Bearer ", ""},
	}
	for _, tt := range tests {
		if got := bearerToken(tt.header); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
