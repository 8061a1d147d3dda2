package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/ssclab/internal/undo"
)

const undoTokenPurpose = "undo"

var errInvalidUndoToken = errors.New("invalid undo token")

type undoClaims struct {
	Kind    string `json:"kind"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildUndoToken(entry undo.Entry) (string, error) {
	claims := undoClaims{
		Kind:    string(entry.Kind),
		Purpose: undoTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        entry.ID,
			ExpiresAt: jwt.NewNumericDate(entry.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// parseUndoToken returns undo.ErrUnknownEntry for expired tokens and
// errInvalidUndoToken for anything not signed by this process.
func (handler *Handler) parseUndoToken(raw string) (undoClaims, error) {
	claims := undoClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return handler.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return undoClaims{}, undo.ErrUnknownEntry
	}
	if err != nil || !token.Valid {
		return undoClaims{}, fmt.Errorf("%w: %v", errInvalidUndoToken, err)
	}
	if claims.Purpose != undoTokenPurpose || claims.ID == "" {
		return undoClaims{}, errInvalidUndoToken
	}
	return claims, nil
}

// offerUndo registers restore for the visible window and describes it for the response.
func (handler *Handler) offerUndo(c *fiber.Ctx, kind undo.Kind, message string, restore undo.RestoreFunc) (fiber.Map, error) {
	entry := handler.undo.Register(kind, restore)
	token, err := handler.buildUndoToken(entry)
	if err != nil {
		handler.undo.Dismiss(entry.ID)
		return nil, err
	}
	return fiber.Map{
		"token":      token,
		"kind":       entry.Kind,
		"expires_at": entry.ExpiresAt.UTC(),
		"message":    message,
		"action":     handler.notice(c, "action.undo"),
	}, nil
}
