package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"transcribe/internal/adapter"
	"transcribe/internal/service"
)

type transcriptionRequest struct {
	Text *string `json:"text"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type progressRequest struct {
	Completed   json.Number `json:"completed"`
	NeedsReview json.Number `json:"needs_review"`
}

type sortWeightRequest struct {
	Weight *int `json:"weight"`
}

// pathIDs validates the named route params as UUIDs.
func pathIDs(c *fiber.Ctx, names ...string) ([]string, bool) {
	ids := make([]string, 0, len(names))
	for _, n := range names {
		id := c.Params(n)
		if _, err := uuid.Parse(id); err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// GetDocument returns the document summary.
func GetDocument(svc service.TranscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		doc, err := svc.Document(c.UserContext(), ids[0])
		if err != nil {
			return writeAdapterError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListPages returns the pages of a document in attachment order.
func ListPages(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		pages, err := a.DocumentPages(c.UserContext(), ids[0])
		if err != nil {
			return writeAdapterError(c, err)
		}
		return c.JSON(pages)
	}
}

// GetPage returns the page summary.
func GetPage(svc service.TranscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id", "pageId")
		if !ok {
			return invalidID(c)
		}
		page, err := svc.Page(c.UserContext(), ids[0], ids[1])
		if err != nil {
			return writeAdapterError(c, err)
		}
		return c.JSON(page)
	}
}

// ImportDocumentTranscription overwrites the whole-document transcription.
func ImportDocumentTranscription(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req transcriptionRequest
		if err := c.BodyParser(&req); err != nil || req.Text == nil {
			return invalidBody(c)
		}
		if err := a.ImportDocumentTranscription(c.UserContext(), ids[0], *req.Text); err != nil {
			return writeAdapterError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ImportPageTranscription overwrites one page transcription.
func ImportPageTranscription(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id", "pageId")
		if !ok {
			return invalidID(c)
		}
		var req transcriptionRequest
		if err := c.BodyParser(&req); err != nil || req.Text == nil {
			return invalidBody(c)
		}
		if err := a.ImportDocumentPageTranscription(c.UserContext(), ids[0], ids[1], *req.Text); err != nil {
			return writeAdapterError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ImportPageStatus overwrites the page status. An empty status clears it.
func ImportPageStatus(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id", "pageId")
		if !ok {
			return invalidID(c)
		}
		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if err := a.ImportPageTranscriptionStatus(c.UserContext(), ids[0], ids[1], req.Status); err != nil {
			return writeAdapterError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ImportProgress overwrites both document percentages. Numbers and numeric strings are accepted.
func ImportProgress(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req progressRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if err := a.ImportDocumentTranscriptionProgress(c.UserContext(), ids[0], req.Completed.String(), req.NeedsReview.String()); err != nil {
			return writeAdapterError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ImportSortWeight stores the document sort key.
func ImportSortWeight(a adapter.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req sortWeightRequest
		if err := c.BodyParser(&req); err != nil || req.Weight == nil {
			return invalidBody(c)
		}
		if err := a.ImportItemSortWeight(c.UserContext(), ids[0], *req.Weight); err != nil {
			return writeAdapterError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RecalculateProgress derives the percentages from the page statuses.
func RecalculateProgress(svc service.TranscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		progress, err := svc.RecalculateProgress(c.UserContext(), ids[0])
		if err != nil {
			return writeAdapterError(c, err)
		}
		return c.JSON(progress)
	}
}

// ExportDocument assembles the document transcription from its pages.
func ExportDocument(svc service.TranscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, ok := pathIDs(c, "id")
		if !ok {
			return invalidID(c)
		}
		text, err := svc.ExportDocument(c.UserContext(), ids[0])
		if err != nil {
			return writeAdapterError(c, err)
		}
		return c.JSON(fiber.Map{"id": ids[0], "transcription": text})
	}
}
