package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"esignapi/internal/http/middleware"
	"esignapi/internal/repository"
	"esignapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the service error taxonomy onto the error
// envelope. Validation errors are recoverable and carry their message;
// authorization errors expose nothing beyond the code; conflicts get
// distinct codes so clients can tell "closed" from "retry".
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		missing *repository.MissingRequiredError
		signers *service.SignersWithoutFieldsError
	)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired signing link")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrDocumentClosed):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_CLOSED", "this document is no longer accepting signatures")
	case errors.Is(err, service.ErrAlreadyComplete):
		return writeError(c, fiber.StatusConflict, "ALREADY_COMPLETE", "signing was already completed")
	case errors.Is(err, service.ErrNotDraft):
		return writeError(c, fiber.StatusConflict, "NOT_DRAFT", "document is no longer editable")
	case errors.As(err, &missing):
		return writeError(c, fiber.StatusBadRequest, "MISSING_REQUIRED_FIELDS", missing.Error())
	case errors.As(err, &signers):
		return writeError(c, fiber.StatusBadRequest, "SIGNERS_WITHOUT_FIELDS", signers.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrNoRecipients),
		errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
