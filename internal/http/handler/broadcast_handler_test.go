package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
)

type stubBroadcastService struct {
	created   *service.CreateBroadcastInput
	cancelErr error
}

func (s *stubBroadcastService) ListBroadcasts(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error) {
	return nil, 0, nil
}

func (s *stubBroadcastService) CreateBroadcast(ctx context.Context, input service.CreateBroadcastInput) (*model.BroadcastJob, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, service.ErrEmptyBroadcast
	}
	s.created = &input
	return &model.BroadcastJob{
		ID:      "b1",
		Message: input.Message,
		Status:  model.BroadcastPending,
	}, nil
}

func (s *stubBroadcastService) CancelBroadcast(ctx context.Context, id string) error {
	return s.cancelErr
}

func broadcastApp(svc service.BroadcastService) *fiber.App {
	h := NewAPIHandler(APIDeps{Broadcasts: svc})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identity", &auth.Identity{UserID: "tester", Role: auth.RoleAdmin})
		return c.Next()
	})
	h.Register(app.Group("/api"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestCreateBroadcast(t *testing.T) {
	svc := &stubBroadcastService{}
	app := broadcastApp(svc)

	req := httptest.NewRequest("POST", "/api/bot-broadcast",
		strings.NewReader(`{"message": "maintenance at noon"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if svc.created == nil || svc.created.CreatedBy != "tester" {
		t.Fatalf("expected creator attribution, got %+v", svc.created)
	}

	var body struct {
		Success   bool               `json:"success"`
		Broadcast model.BroadcastJob `json:"broadcast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success response")
	}
	if body.Broadcast.Status != model.BroadcastPending {
		t.Fatalf("expected pending job, got %q", body.Broadcast.Status)
	}
}

func TestCreateBroadcastRequiresMessage(t *testing.T) {
	app := broadcastApp(&stubBroadcastService{})

	req := httptest.NewRequest("POST", "/api/bot-broadcast", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCancelBroadcastStatuses(t *testing.T) {
	tests := []struct {
		name       string
		cancelErr  error
		wantStatus int
	}{
		{"pending", nil, fiber.StatusOK},
		{"not found", repository.ErrBroadcastNotFound, fiber.StatusNotFound},
		{"already running", repository.ErrBroadcastNotPending, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := broadcastApp(&stubBroadcastService{cancelErr: tt.cancelErr})

			resp, err := app.Test(httptest.NewRequest("DELETE", "/api/bot-broadcast?id=b1", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestCancelBroadcastRequiresID(t *testing.T) {
	app := broadcastApp(&stubBroadcastService{})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/bot-broadcast", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
