package api

import "github.com/gofiber/fiber/v2"

// ResetAll wipes the store. Pending undo entries are dropped since they point at wiped rows.
func (handler *Handler) ResetAll(c *fiber.Ctx) error {
	payload := resetPayload{}
	if len(c.Body()) > 0 {
		if err := handler.parsePayload(c, &payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, codeInvalidInput)
		}
	}

	if err := handler.services.Reset.ResetAll(payload.Reseed); err != nil {
		return handler.serviceError(c, "reset_data", err)
	}
	handler.undo.DismissAll()
	return c.JSON(fiber.Map{"ok": true, "message": handler.notice(c, "notice.data_reset")})
}
