package handler

import (
	"github.com/gofiber/fiber/v2"

	"esignapi/internal/model"
	"esignapi/internal/service"
)

// ListFields returns the persisted field set of a document, the editor's
// baseline for its next diff.
func ListFields(editorSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fields, err := editorSvc.ListFields(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"fields": fields})
	}
}

// SaveFields applies the editor's three-set batch (creates, updates,
// deletes) atomically against a draft document.
func SaveFields(editorSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var batch model.FieldBatch
		if err := c.BodyParser(&batch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := editorSvc.SaveFields(c.UserContext(), id, batch); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SendDocument transitions draft->pending once every signer has at least
// one field; otherwise it names the signers still missing fields.
func SendDocument(editorSvc service.EditorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := editorSvc.Send(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}
