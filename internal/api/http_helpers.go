package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/services"
	"github.com/terraincognita07/ssclab/internal/undo"
)

const (
	contextLanguageKey = "language"
	contextMessagesKey = "messages"
)

const (
	codeCollectionNotFound    = "collection_not_found"
	codeDuplicateCollection   = "duplicate_collection_name"
	codeExperimentNotFound    = "experiment_not_found"
	codeInternal              = "internal"
	codeInvalidCollectionName = "invalid_collection_name"
	codeInvalidExperiment     = "invalid_experiment"
	codeInvalidInput          = "invalid_input"
	codeInvalidTag            = "invalid_tag"
	codeInvalidWin            = "invalid_win"
	codePersistFailed         = "persist_failed"
	codeUndoExpired           = "undo_expired"
	codeWinNotFound           = "win_not_found"
)

var errInvalidPayload = errors.New("invalid payload")

// LanguageMiddleware picks the response language from ?lang= or Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func (handler *Handler) notice(c *fiber.Ctx, key string, args ...any) string {
	return handler.i18n.Translatef(currentLanguage(c), key, args...)
}

// apiError writes {"error": code, "message": localized}.
func apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": translateMessage(currentMessages(c), "error."+code),
	})
}

// serviceError maps a service failure to its status and code. Persistence
// failures are counted under operation.
func (handler *Handler) serviceError(c *fiber.Ctx, operation string, err error) error {
	switch {
	case errors.Is(err, services.ErrExperimentNotFound):
		return apiError(c, fiber.StatusNotFound, codeExperimentNotFound)
	case errors.Is(err, services.ErrWinNotFound):
		return apiError(c, fiber.StatusNotFound, codeWinNotFound)
	case errors.Is(err, services.ErrCollectionNotFound):
		return apiError(c, fiber.StatusNotFound, codeCollectionNotFound)
	case errors.Is(err, services.ErrDuplicateCollectionName):
		return apiError(c, fiber.StatusConflict, codeDuplicateCollection)
	case errors.Is(err, services.ErrInvalidCollectionName):
		return apiError(c, fiber.StatusBadRequest, codeInvalidCollectionName)
	case errors.Is(err, services.ErrInvalidExperiment):
		return apiError(c, fiber.StatusBadRequest, codeInvalidExperiment)
	case errors.Is(err, services.ErrInvalidWin):
		return apiError(c, fiber.StatusBadRequest, codeInvalidWin)
	case errors.Is(err, undo.ErrUnknownEntry):
		return apiError(c, fiber.StatusGone, codeUndoExpired)
	case errors.Is(err, services.ErrPersistFailed):
		handler.metrics.PersistenceFailure(operation)
		return apiError(c, fiber.StatusInternalServerError, codePersistFailed)
	default:
		handler.logger.Error("request failed", slog.String("operation", operation), slog.Any("error", err))
		return apiError(c, fiber.StatusInternalServerError, codeInternal)
	}
}

// parsePayload decodes the JSON body and runs struct validation.
func (handler *Handler) parsePayload(c *fiber.Ctx, target any) error {
	if err := c.BodyParser(target); err != nil {
		return errInvalidPayload
	}
	if err := handler.validate.Struct(target); err != nil {
		return errInvalidPayload
	}
	return nil
}

// parseCriteria reads repeated or comma-separated ?tag= values.
func parseCriteria(c *fiber.Ctx) (badges.Criteria, error) {
	raw := make([]string, 0)
	for _, value := range c.Context().QueryArgs().PeekMulti("tag") {
		raw = append(raw, strings.Split(string(value), ",")...)
	}
	tags, err := badges.ParseTags(raw)
	if err != nil {
		return badges.Criteria{}, err
	}
	return badges.NewCriteria(tags...), nil
}
