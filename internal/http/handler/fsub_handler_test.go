package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
)

type stubFsubRepo struct {
	channels []model.FsubChannel
	addErr   error
	removed  []int64
}

func (s *stubFsubRepo) List(ctx context.Context) ([]model.FsubChannel, error) {
	return s.channels, nil
}

func (s *stubFsubRepo) Add(ctx context.Context, ch *model.FsubChannel) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.channels = append(s.channels, *ch)
	return nil
}

func (s *stubFsubRepo) Remove(ctx context.Context, channelID int64) error {
	s.removed = append(s.removed, channelID)
	return nil
}

type stubSettingsRepo struct {
	stored  model.Settings
	updates []model.Settings
}

func (s *stubSettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	return s.stored, nil
}

func (s *stubSettingsRepo) Update(ctx context.Context, updates model.Settings) error {
	s.updates = append(s.updates, updates)
	if s.stored == nil {
		s.stored = model.Settings{}
	}
	for k, v := range updates {
		s.stored[k] = v
	}
	return nil
}

func fsubApp(fsub repository.FsubRepository, settings repository.SettingsRepository) *fiber.App {
	h := NewAPIHandler(APIDeps{Repos: &repository.Repositories{Fsub: fsub, Settings: settings}})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identity", &auth.Identity{UserID: "tester", Role: auth.RoleAdmin})
		return c.Next()
	})
	h.Register(app.Group("/api"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestFsubToggleFlipsMode(t *testing.T) {
	settings := &stubSettingsRepo{stored: model.Settings{"fsub_mode": true}}
	app := fsubApp(&stubFsubRepo{}, settings)

	req := httptest.NewRequest("POST", "/api/bot-fsub", strings.NewReader(`{"action": "toggle"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		FsubEnabled bool `json:"fsub_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.FsubEnabled {
		t.Fatal("expected toggle to disable fsub mode")
	}
	if len(settings.updates) != 1 {
		t.Fatalf("expected one settings update, got %d", len(settings.updates))
	}
	if v, _ := settings.updates[0]["fsub_mode"].(bool); v {
		t.Fatal("update must write the flipped value")
	}
}

func TestFsubToggleDefaultsToEnabled(t *testing.T) {
	// Nothing stored; toggle must treat the mode as on and turn it off.
	settings := &stubSettingsRepo{}
	app := fsubApp(&stubFsubRepo{}, settings)

	req := httptest.NewRequest("POST", "/api/bot-fsub", strings.NewReader(`{"action": "toggle"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var body struct {
		FsubEnabled bool `json:"fsub_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.FsubEnabled {
		t.Fatal("expected first toggle to disable")
	}
}

func TestFsubAddDuplicate(t *testing.T) {
	app := fsubApp(&stubFsubRepo{addErr: repository.ErrChannelExists}, &stubSettingsRepo{})

	req := httptest.NewRequest("POST", "/api/bot-fsub",
		strings.NewReader(`{"action": "add", "channel_id": -100123}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFsubUnknownAction(t *testing.T) {
	app := fsubApp(&stubFsubRepo{}, &stubSettingsRepo{})

	req := httptest.NewRequest("POST", "/api/bot-fsub", strings.NewReader(`{"action": "purge"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
