package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/undo"
)

// Undo runs the restore behind a still-visible undo token.
func (handler *Handler) Undo(c *fiber.Ctx) error {
	payload := undoPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput)
	}
	claims, err := handler.parseUndoToken(payload.Token)
	if err != nil {
		return handler.undoTokenError(c, claims.Kind, err)
	}

	entry, restored, err := handler.undo.Invoke(claims.ID)
	if err != nil {
		handler.metrics.Undo(claims.Kind, undoOutcome(err))
		return handler.serviceError(c, "undo_"+claims.Kind, err)
	}
	handler.metrics.Undo(string(entry.Kind), "restored")
	return c.JSON(fiber.Map{
		"kind":     entry.Kind,
		"restored": restored,
		"message":  handler.notice(c, "notice.restored"),
	})
}

// DismissUndo closes the notification early; the restore is dropped.
func (handler *Handler) DismissUndo(c *fiber.Ctx) error {
	payload := undoPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput)
	}
	claims, err := handler.parseUndoToken(payload.Token)
	if err != nil {
		return handler.undoTokenError(c, claims.Kind, err)
	}

	if !handler.undo.Dismiss(claims.ID) {
		return apiError(c, fiber.StatusGone, codeUndoExpired)
	}
	handler.metrics.Undo(claims.Kind, "dismissed")
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) undoTokenError(c *fiber.Ctx, kind string, err error) error {
	if kind == "" {
		kind = "unknown"
	}
	if errors.Is(err, undo.ErrUnknownEntry) {
		handler.metrics.Undo(kind, "expired")
		return apiError(c, fiber.StatusGone, codeUndoExpired)
	}
	return apiError(c, fiber.StatusBadRequest, codeInvalidInput)
}

func undoOutcome(err error) string {
	if errors.Is(err, undo.ErrUnknownEntry) {
		return "expired"
	}
	return "failed"
}
