package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/ssclab/internal/undo"
)

func TestDismissUndoDropsRestore(t *testing.T) {
	ta := newTestApp(t)
	id := createExperimentViaAPI(t, ta, map[string]any{"title": "Juggle"})
	deleted := ta.mustStatus(t, http.StatusOK, http.MethodDelete, "/api/experiments/"+id, nil)
	token := stringField(t, deleted, "undo", "token")

	response, _ := ta.do(t, http.MethodDelete, "/api/undo", map[string]any{"token": token})
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected dismiss to return 204, got %d", response.StatusCode)
	}
	ta.mustStatus(t, http.StatusGone, http.MethodPost, "/api/undo", map[string]any{"token": token})

	listed := ta.mustStatus(t, http.StatusOK, http.MethodGet, "/api/experiments", nil)
	if experiments := listField(t, listed, "experiments"); len(experiments) != 0 {
		t.Fatalf("expected dismissed delete to stay deleted, got %#v", experiments)
	}
}

func TestNewDeletionReplacesVisibleUndo(t *testing.T) {
	ta := newTestApp(t)
	first := createExperimentViaAPI(t, ta, map[string]any{"title": "One"})
	second := createExperimentViaAPI(t, ta, map[string]any{"title": "Two"})

	firstDeleted := ta.mustStatus(t, http.StatusOK, http.MethodDelete, "/api/experiments/"+first, nil)
	secondDeleted := ta.mustStatus(t, http.StatusOK, http.MethodDelete, "/api/experiments/"+second, nil)

	ta.mustStatus(t, http.StatusGone, http.MethodPost, "/api/undo", map[string]any{"token": stringField(t, firstDeleted, "undo", "token")})
	ta.mustStatus(t, http.StatusOK, http.MethodPost, "/api/undo", map[string]any{"token": stringField(t, secondDeleted, "undo", "token")})
}

func TestUndoRejectsForeignAndExpiredTokens(t *testing.T) {
	ta := newTestApp(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, undoClaims{
		Kind:    string(undo.KindWin),
		Purpose: undoTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "entry",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := foreign.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}
	response, body := ta.do(t, http.MethodPost, "/api/undo", map[string]any{"token": signed})
	if response.StatusCode != http.StatusBadRequest || body["error"] != codeInvalidInput {
		t.Fatalf("expected foreign token rejected, got %d %#v", response.StatusCode, body)
	}

	expired, err := ta.handler.buildUndoToken(undo.Entry{ID: "entry", Kind: undo.KindWin, ExpiresAt: time.Now().Add(-time.Minute)})
	if err != nil {
		t.Fatalf("build expired token: %v", err)
	}
	response, body = ta.do(t, http.MethodPost, "/api/undo", map[string]any{"token": expired})
	if response.StatusCode != http.StatusGone || body["error"] != codeUndoExpired {
		t.Fatalf("expected expired token gone, got %d %#v", response.StatusCode, body)
	}

	response, _ = ta.do(t, http.MethodPost, "/api/undo", map[string]any{})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected missing token rejected, got %d", response.StatusCode)
	}
}
