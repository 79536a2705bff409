package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
)

type stubUserRepo struct {
	repository.UserRepository

	users     []model.User
	total     int64
	bannedIDs []int64
	setErr    error
}

func (s *stubUserRepo) List(ctx context.Context, q repository.UserQuery) ([]model.User, int64, error) {
	return s.users, s.total, nil
}

func (s *stubUserRepo) SetBanned(ctx context.Context, userID int64, banned bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.bannedIDs = append(s.bannedIDs, userID)
	return nil
}

// newTestApp wires the handler behind a fixed identity, standing in for the
// auth middleware.
func newTestApp(h *APIHandler, role auth.Role) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identity", &auth.Identity{UserID: "tester", Role: role})
		return c.Next()
	})
	h.Register(app.Group("/api"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func testHandler(repos *repository.Repositories) *APIHandler {
	return NewAPIHandler(APIDeps{Repos: repos})
}

func TestListUsersMasksForAdmins(t *testing.T) {
	joined := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubUserRepo{
		users: []model.User{{
			UserID:     7238412345,
			Name:       "Bob",
			Username:   "bob_tg",
			Phone:      "+15551234567",
			JoinedDate: joined,
		}},
		total: 1,
	}
	h := testHandler(&repository.Repositories{Users: repo})
	app := newTestApp(h, auth.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bot-users", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	row := body.Data[0]
	if row["user_id"] != "***2345" {
		t.Fatalf("expected masked id ***2345, got %v", row["user_id"])
	}
	if _, ok := row["username"]; ok {
		t.Fatal("username must be omitted for admins")
	}
	if _, ok := row["phone"]; ok {
		t.Fatal("phone must be omitted for admins")
	}
	if row["name"] != "Bob" {
		t.Fatal("name must survive masking")
	}
}

func TestListUsersFullForOwners(t *testing.T) {
	repo := &stubUserRepo{
		users: []model.User{{UserID: 7238412345, Name: "Bob", Username: "bob_tg", Phone: "+15551234567"}},
		total: 1,
	}
	h := testHandler(&repository.Repositories{Users: repo})
	app := newTestApp(h, auth.RoleOwner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bot-users", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	row := body.Data[0]
	if row["user_id"] != "7238412345" {
		t.Fatalf("owner must see the full id, got %v", row["user_id"])
	}
	if row["username"] != "bob_tg" || row["phone"] != "+15551234567" {
		t.Fatal("owner must see contact fields")
	}
}

func TestUpdateUserBanAction(t *testing.T) {
	repo := &stubUserRepo{}
	h := testHandler(&repository.Repositories{Users: repo})
	app := newTestApp(h, auth.RoleAdmin)

	req := httptest.NewRequest("POST", "/api/bot-users",
		strings.NewReader(`{"user_id": 42, "action": "ban"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if len(repo.bannedIDs) != 1 || repo.bannedIDs[0] != 42 {
		t.Fatalf("expected ban of user 42, got %v", repo.bannedIDs)
	}
}

func TestUpdateUserRejectsUnknownAction(t *testing.T) {
	h := testHandler(&repository.Repositories{Users: &stubUserRepo{}})
	app := newTestApp(h, auth.RoleAdmin)

	req := httptest.NewRequest("POST", "/api/bot-users",
		strings.NewReader(`{"user_id": 42, "action": "promote"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMaskUserID(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{7238412345, "***2345"},
		{1234, "***1234"},
		{99, "***99"},
	}
	for _, tt := range tests {
		if got := maskUserID(tt.id); got != tt.want {
			t.Errorf("maskUserID(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
