package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"transcribe/internal/adapter"
	"transcribe/internal/service"
)

// RegisterRoutes attaches the engine-facing HTTP routes to the provided Fiber app.
// A nil gatherer leaves /metrics unregistered.
func RegisterRoutes(app *fiber.App, db *sql.DB, a adapter.Adapter, svc service.TranscriptionService, g prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if g != nil {
		app.Get("/metrics", Metrics(g))
	}

	docs := app.Group("/documents")
	docs.Get("/:id", GetDocument(svc))
	docs.Put("/:id/transcription", ImportDocumentTranscription(a))
	docs.Put("/:id/progress", ImportProgress(a))
	docs.Post("/:id/progress/recalculate", RecalculateProgress(svc))
	docs.Put("/:id/sort-weight", ImportSortWeight(a))
	docs.Post("/:id/export", ExportDocument(svc))

	docs.Get("/:id/pages", ListPages(a))
	docs.Get("/:id/pages/:pageId", GetPage(svc))
	docs.Put("/:id/pages/:pageId/transcription", ImportPageTranscription(a))
	docs.Put("/:id/pages/:pageId/status", ImportPageStatus(a))
}
