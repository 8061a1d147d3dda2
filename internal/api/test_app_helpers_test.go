package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/db"
	"github.com/terraincognita07/ssclab/internal/i18n"
	"github.com/terraincognita07/ssclab/internal/undo"
)

type testApp struct {
	app      *fiber.App
	handler  *Handler
	services *Services
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ssclab-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	registry := undo.NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := NewServices(database, logger)
	handler, err := NewHandler(Options{
		Services:  services,
		SecretKey: "test-secret-key",
		I18n:      i18nManager,
		Undo:      registry,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return testApp{app: app, handler: handler, services: services}
}

func (ta testApp) do(t *testing.T, method string, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 && json.Valid(raw) {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body: %v", err)
		}
	}
	return response, decoded
}

func (ta testApp) mustStatus(t *testing.T, want int, method string, path string, payload any) map[string]any {
	t.Helper()

	response, decoded := ta.do(t, method, path, payload)
	if response.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d (body %#v)", method, path, want, response.StatusCode, decoded)
	}
	return decoded
}

func stringField(t *testing.T, payload map[string]any, keys ...string) string {
	t.Helper()

	var current any = payload
	for _, key := range keys {
		object, ok := current.(map[string]any)
		if !ok {
			t.Fatalf("expected object at %q in %#v", key, payload)
		}
		current = object[key]
	}
	value, ok := current.(string)
	if !ok {
		t.Fatalf("expected string at %v, got %#v", keys, current)
	}
	return value
}

func listField(t *testing.T, payload map[string]any, key string) []any {
	t.Helper()

	values, ok := payload[key].([]any)
	if !ok {
		t.Fatalf("expected list at %q, got %#v", key, payload[key])
	}
	return values
}
