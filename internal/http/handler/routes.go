package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"esignapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, editorSvc service.EditorService, signSvc service.SigningService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Sender-side document lifecycle
	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Get("/documents/:id/download", DownloadDocument(docSvc))
	app.Post("/documents/:id/recipients", AddRecipients(docSvc))
	app.Post("/documents/:id/void", VoidDocument(docSvc))

	// Field editor persistence and the send gate
	app.Get("/documents/:id/fields", ListFields(editorSvc))
	app.Put("/documents/:id/fields", SaveFields(editorSvc))
	app.Post("/documents/:id/send", SendDocument(editorSvc))

	// Recipient-side signing session (token is the sole credential)
	app.Get("/sign/:documentId", ResolveSigningSession(signSvc))
	app.Post("/sign/:documentId/submit", SubmitSignature(signSvc))
	app.Post("/sign/:documentId/decline", DeclineSignature(signSvc))
}
