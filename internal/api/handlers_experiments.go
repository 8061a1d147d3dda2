package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/services"
	"github.com/terraincognita07/ssclab/internal/undo"
)

func (handler *Handler) ListExperiments(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidTag)
	}
	experiments, err := handler.services.Experiments.List(criteria)
	if err != nil {
		return handler.serviceError(c, "list_experiments", err)
	}
	return c.JSON(fiber.Map{"experiments": experiments})
}

func (handler *Handler) GetExperiment(c *fiber.Ctx) error {
	experiment, err := handler.services.Experiments.Find(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "get_experiment", err)
	}
	return c.JSON(experiment)
}

func (handler *Handler) GetActiveExperiment(c *fiber.Ctx) error {
	experiment, found, err := handler.services.Activation.Active()
	if err != nil {
		return handler.serviceError(c, "get_active_experiment", err)
	}
	if !found {
		return c.JSON(fiber.Map{"experiment": nil})
	}
	return c.JSON(fiber.Map{"experiment": experiment})
}

func (handler *Handler) CreateExperiment(c *fiber.Ctx) error {
	payload := experimentPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidExperiment)
	}
	experiment, err := handler.services.Experiments.Create(payload.input())
	if err != nil {
		return handler.serviceError(c, "create_experiment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(experiment)
}

func (handler *Handler) UpdateExperiment(c *fiber.Ctx) error {
	payload := experimentPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidExperiment)
	}
	experiment, err := handler.services.Experiments.Update(c.Params("id"), payload.input())
	if err != nil {
		return handler.serviceError(c, "update_experiment", err)
	}
	return c.JSON(experiment)
}

func (handler *Handler) DeleteExperiment(c *fiber.Ctx) error {
	deleted, err := handler.services.Experiments.Delete(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "delete_experiment", err)
	}
	handler.metrics.Deleted(string(undo.KindExperiment))

	offer, err := handler.offerUndo(c, undo.KindExperiment,
		handler.notice(c, "notice.experiment_deleted", deleted.Snapshot.Title),
		func() (any, error) { return deleted.Restore() },
	)
	if err != nil {
		return handler.serviceError(c, "delete_experiment", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted.Snapshot, "undo": offer})
}

// ToggleExperiment flips the active state; an activation comes with an undo
// that hands the active slot back.
func (handler *Handler) ToggleExperiment(c *fiber.Ctx) error {
	result, err := handler.services.Activation.ToggleActive(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "toggle_experiment", err)
	}
	return handler.activationResponse(c, result)
}

func (handler *Handler) CompleteExperiment(c *fiber.Ctx) error {
	experiment, err := handler.services.Activation.Complete(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "complete_experiment", err)
	}
	handler.metrics.Activation("complete")
	return c.JSON(experiment)
}

func (handler *Handler) LogWinFromExperiment(c *fiber.Ctx) error {
	payload := winPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidWin)
	}
	win, err := handler.services.Wins.LogFromExperiment(c.Params("id"), payload.input())
	if err != nil {
		return handler.serviceError(c, "log_win", err)
	}
	handler.metrics.WinLogged("experiment")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"win": win, "message": handler.notice(c, "notice.win_logged")})
}

func (handler *Handler) activationResponse(c *fiber.Ctx, result services.ActivationResult) error {
	response := fiber.Map{"result": result}
	if !result.Activated {
		handler.metrics.Activation("deactivate")
		response["message"] = handler.notice(c, "notice.experiment_deactivated", result.Experiment.Title)
		return c.JSON(response)
	}

	handler.metrics.Activation("activate")
	message := handler.notice(c, "notice.experiment_activated", result.Experiment.Title)
	if result.Previous != nil {
		message = handler.notice(c, "notice.activation_changed", result.Experiment.Title, result.Previous.Title)
	}
	response["message"] = message

	offer, err := handler.offerUndo(c, undo.KindActivation, message, func() (any, error) {
		return handler.services.Activation.UndoActivation(result)
	})
	if err != nil {
		return handler.serviceError(c, "toggle_experiment", err)
	}
	response["undo"] = offer
	return c.JSON(response)
}
