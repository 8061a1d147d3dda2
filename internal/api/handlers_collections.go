package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/undo"
)

func (handler *Handler) ListCollections(c *fiber.Ctx) error {
	collections, err := handler.services.Collections.List()
	if err != nil {
		return handler.serviceError(c, "list_collections", err)
	}
	return c.JSON(fiber.Map{"collections": collections})
}

func (handler *Handler) CreateCollection(c *fiber.Ctx) error {
	payload := collectionPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidCollectionName)
	}
	collection, err := handler.services.Collections.Create(payload.Name)
	if err != nil {
		return handler.serviceError(c, "create_collection", err)
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}

func (handler *Handler) RenameCollection(c *fiber.Ctx) error {
	payload := collectionPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidCollectionName)
	}
	collection, err := handler.services.Collections.Rename(c.Params("id"), payload.Name)
	if err != nil {
		return handler.serviceError(c, "rename_collection", err)
	}
	return c.JSON(collection)
}

func (handler *Handler) DeleteCollection(c *fiber.Ctx) error {
	deleted, err := handler.services.Collections.Delete(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "delete_collection", err)
	}
	handler.metrics.Deleted(string(undo.KindCollection))

	offer, err := handler.offerUndo(c, undo.KindCollection,
		handler.notice(c, "notice.collection_deleted", deleted.Snapshot.Name),
		func() (any, error) { return deleted.Restore() },
	)
	if err != nil {
		return handler.serviceError(c, "delete_collection", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted.Snapshot, "undo": offer})
}
