package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/ssclab/internal/config"
	"github.com/terraincognita07/ssclab/internal/undo"
)

func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SSCLAB_SECRET_KEY", "cli-test-secret")
	t.Setenv("SSCLAB_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	command := NewRootCommand(&stdout, &stderr)
	command.SetArgs(append([]string{"--db", dbPath}, args...))
	err := command.Execute()
	return stdout.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	output, err := runCommand(t, dbPath, args...)
	if err != nil {
		t.Fatalf("ssclab %v returned error: %v", args, err)
	}
	return output
}

func TestSeedRunsOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	if output := mustRun(t, dbPath, "seed"); !strings.Contains(output, "Sample data inserted.") {
		t.Fatalf("first seed output = %q, want inserted notice", output)
	}
	if output := mustRun(t, dbPath, "seed"); !strings.Contains(output, "already inserted") {
		t.Fatalf("second seed output = %q, want already inserted notice", output)
	}
}

func TestExperimentsCommandFiltersByTag(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	mustRun(t, dbPath, "seed")

	output := mustRun(t, dbPath, "experiments", "--tag", "outdoor")
	if !strings.Contains(output, "Run a new trail") {
		t.Fatalf("experiments output missing outdoor experiment:\n%s", output)
	}
	if strings.Contains(output, "Bake sourdough bread") {
		t.Fatalf("experiments output contains indoor experiment:\n%s", output)
	}

	output = mustRun(t, dbPath, "experiments", "-t", "indoor", "-t", "timeframe:7D")
	if !strings.Contains(output, "Bake sourdough bread") || strings.Contains(output, "Learn 50 words") {
		t.Fatalf("unexpected indoor 7D listing:\n%s", output)
	}

	if _, err := runCommand(t, dbPath, "experiments", "--tag", "sparkly"); err == nil {
		t.Fatal("expected unknown tag to fail")
	}
}

func TestWinsCommandListsScopes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	mustRun(t, dbPath, "seed")

	output := mustRun(t, dbPath, "wins", "--grouped")
	if strings.Count(output, "Sunrise walk") != 1 {
		t.Fatalf("grouped wins should show the repeated walk once:\n%s", output)
	}

	output = mustRun(t, dbPath, "wins")
	if strings.Count(output, "Sunrise walk") != 2 {
		t.Fatalf("ungrouped wins should show both walks:\n%s", output)
	}

	output = mustRun(t, dbPath, "wins", "--scope", "uncategorized")
	if !strings.Contains(output, "Fixed the squeaky door") || strings.Contains(output, "Sunrise walk") {
		t.Fatalf("unexpected uncategorized listing:\n%s", output)
	}

	if _, err := runCommand(t, dbPath, "wins", "--scope", "missing-collection"); err == nil {
		t.Fatal("expected unknown collection scope to fail")
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	mustRun(t, dbPath, "seed")

	if _, err := runCommand(t, dbPath, "reset"); !errors.Is(err, errResetNotConfirmed) {
		t.Fatalf("reset without --yes error = %v, want errResetNotConfirmed", err)
	}
	if output := mustRun(t, dbPath, "experiments"); strings.Contains(output, "No experiments match.") {
		t.Fatal("unconfirmed reset must not wipe data")
	}

	mustRun(t, dbPath, "reset", "--yes")
	if output := mustRun(t, dbPath, "experiments"); !strings.Contains(output, "No experiments match.") {
		t.Fatalf("experiments after reset = %q, want empty notice", output)
	}

	output := mustRun(t, dbPath, "reset", "--yes", "--reseed")
	if !strings.Contains(output, "Sample data loaded.") {
		t.Fatalf("reseed output = %q", output)
	}
	if output := mustRun(t, dbPath, "experiments"); !strings.Contains(output, "Run a new trail") {
		t.Fatalf("expected sample experiments after reseed:\n%s", output)
	}
}

func TestNewServerServesHealthAndAPI(t *testing.T) {
	t.Setenv("SSCLAB_SECRET_KEY", "cli-test-secret")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.DBPath = filepath.Join(t.TempDir(), "serve.db")

	var stderr bytes.Buffer
	options := &rootOptions{stdout: &bytes.Buffer{}, stderr: &stderr, cfg: cfg, logger: cfg.NewLogger(&stderr)}
	s, err := openStore(options)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	registry := undo.NewRegistry(cfg.UndoWindow)
	t.Cleanup(registry.Close)
	app, err := newServer(options, s.services, registry)
	if err != nil {
		t.Fatalf("newServer returned error: %v", err)
	}

	for _, path := range []string{"/healthz", "/api/experiments", "/metrics"} {
		response, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		_ = response.Body.Close()
		if response.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, response.StatusCode)
		}
	}

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	if err != nil {
		t.Fatalf("GET /nope failed: %v", err)
	}
	_ = response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("GET /nope status = %d, want 404", response.StatusCode)
	}
}
