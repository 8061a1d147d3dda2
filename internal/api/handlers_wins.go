package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/undo"
)

// ListWins serves ?scope=all|uncategorized|<collection id>, ?tag= filters and
// ?grouped=1 for one representative per repeated activity.
func (handler *Handler) ListWins(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidTag)
	}
	scope := c.Query("scope")

	if c.QueryBool("grouped") {
		groups, err := handler.services.Wins.Grouped(scope, criteria)
		if err != nil {
			return handler.serviceError(c, "list_wins", err)
		}
		return c.JSON(fiber.Map{"groups": groups})
	}

	wins, err := handler.services.Wins.List(scope, criteria)
	if err != nil {
		return handler.serviceError(c, "list_wins", err)
	}
	return c.JSON(fiber.Map{"wins": wins})
}

func (handler *Handler) GetWin(c *fiber.Ctx) error {
	win, err := handler.services.Wins.Find(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "get_win", err)
	}
	return c.JSON(win)
}

func (handler *Handler) LogStandaloneWin(c *fiber.Ctx) error {
	payload := winPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidWin)
	}
	win, err := handler.services.Wins.LogStandalone(payload.input())
	if err != nil {
		return handler.serviceError(c, "log_win", err)
	}
	handler.metrics.WinLogged("standalone")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"win": win, "message": handler.notice(c, "notice.win_logged")})
}

func (handler *Handler) UpdateWin(c *fiber.Ctx) error {
	payload := winPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidWin)
	}
	win, err := handler.services.Wins.Update(c.Params("id"), payload.input())
	if err != nil {
		return handler.serviceError(c, "update_win", err)
	}
	return c.JSON(win)
}

func (handler *Handler) MoveWin(c *fiber.Ctx) error {
	payload := movePayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput)
	}
	win, err := handler.services.Wins.Move(c.Params("id"), payload.CollectionID)
	if err != nil {
		return handler.serviceError(c, "move_win", err)
	}
	return c.JSON(win)
}

func (handler *Handler) DeleteWin(c *fiber.Ctx) error {
	deleted, err := handler.services.Wins.Delete(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "delete_win", err)
	}
	handler.metrics.Deleted(string(undo.KindWin))

	offer, err := handler.offerUndo(c, undo.KindWin,
		handler.notice(c, "notice.win_deleted", deleted.Snapshot.Title),
		func() (any, error) { return deleted.Restore() },
	)
	if err != nil {
		return handler.serviceError(c, "delete_win", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted.Snapshot, "undo": offer})
}

// DoItAgain re-activates the win's experiment and points the client at the logging step.
func (handler *Handler) DoItAgain(c *fiber.Ctx) error {
	result, err := handler.services.Repeats.DoItAgain(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "do_it_again", err)
	}
	handler.metrics.Activation("repeat")

	message := handler.notice(c, "notice.experiment_activated", result.Experiment.Title)
	if result.Previous != nil {
		message = handler.notice(c, "notice.activation_changed", result.Experiment.Title, result.Previous.Title)
	}
	offer, err := handler.offerUndo(c, undo.KindActivation, message, func() (any, error) {
		return handler.services.Activation.UndoActivation(result.ActivationResult)
	})
	if err != nil {
		return handler.serviceError(c, "do_it_again", err)
	}
	return c.JSON(fiber.Map{"result": result, "message": message, "undo": offer})
}

func (handler *Handler) GetRepeatCount(c *fiber.Ctx) error {
	count, err := handler.services.Repeats.CountFor(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "repeat_count", err)
	}
	return c.JSON(fiber.Map{"count": count})
}
