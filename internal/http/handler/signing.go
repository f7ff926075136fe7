package handler

import (
	"github.com/gofiber/fiber/v2"

	"esignapi/internal/service"
)

// ResolveSigningSession validates the signing link (documentId + opaque
// token) and returns the recipient-scoped session view. A completed
// session resolves to isComplete with no field data, every time.
func ResolveSigningSession(signSvc service.SigningService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := signSvc.Resolve(c.UserContext(), c.Params("documentId"), c.Query("token"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}

// SubmitSignature performs the authoritative submission: token and
// required-field completeness are re-validated server-side regardless of
// what the client already checked.
func SubmitSignature(signSvc service.SigningService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Token       string            `json:"token"`
			FieldValues map[string]string `json:"fieldValues"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		outcome, err := signSvc.Submit(c.UserContext(), c.Params("documentId"), body.Token, body.FieldValues)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(outcome)
	}
}

// DeclineSignature records a recipient's explicit refusal.
func DeclineSignature(signSvc service.SigningService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Token  string `json:"token"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := signSvc.Decline(c.UserContext(), c.Params("documentId"), body.Token, body.Reason); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
