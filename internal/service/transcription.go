package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"transcribe/internal/adapter"
	"transcribe/internal/logging"
	"transcribe/internal/model"
)

// DocumentView is the engine-facing summary of a document.
type DocumentView struct {
	ID                    string  `json:"id"`
	Exists                bool    `json:"exists"`
	Title                 string  `json:"title"`
	FirstPageID           string  `json:"first_page_id"`
	Transcription         *string `json:"transcription"`
	TranscriptionImported bool    `json:"transcription_imported"`
}

// PageView is the engine-facing summary of one page.
type PageView struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	FileURL               string  `json:"file_url"`
	Transcription         *string `json:"transcription"`
	Status                string  `json:"status"`
	TranscriptionImported bool    `json:"transcription_imported"`
}

// TranscriptionService composes adapter calls into the use cases the HTTP surface and CLI expose.
type TranscriptionService interface {
	// Document returns the document summary. Invalid documents yield adapter.ErrDocumentNotFound.
	Document(ctx context.Context, documentID string) (*DocumentView, error)

	// Page returns the page summary.
	Page(ctx context.Context, documentID, pageID string) (*PageView, error)

	// RecalculateProgress derives both document percentages from the page statuses and imports them.
	RecalculateProgress(ctx context.Context, documentID string) (model.Progress, error)

	// ExportDocument joins the imported page transcriptions in page order with blank lines
	// and stores the result as the document transcription.
	ExportDocument(ctx context.Context, documentID string) (string, error)
}

type transcriptionService struct {
	adapter adapter.Adapter
}

// NewTranscriptionService constructs a new TranscriptionService.
func NewTranscriptionService(a adapter.Adapter) TranscriptionService {
	return &transcriptionService{adapter: a}
}

func (s *transcriptionService) Document(ctx context.Context, documentID string) (*DocumentView, error) {
	if documentID == "" {
		return nil, adapter.ErrIDRequired
	}
	ok, err := s.adapter.DocumentExists(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", adapter.ErrDocumentNotFound, documentID)
	}

	v := &DocumentView{ID: documentID, Exists: true}
	if v.Title, err = s.adapter.DocumentTitle(ctx, documentID); err != nil {
		return nil, err
	}
	if v.FirstPageID, err = s.adapter.DocumentFirstPageID(ctx, documentID); err != nil {
		return nil, err
	}
	if v.Transcription, err = s.adapter.DocumentTranscription(ctx, documentID); err != nil {
		return nil, err
	}
	if v.TranscriptionImported, err = s.adapter.DocumentTranscriptionIsImported(ctx, documentID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *transcriptionService) Page(ctx context.Context, documentID, pageID string) (*PageView, error) {
	if documentID == "" || pageID == "" {
		return nil, adapter.ErrIDRequired
	}
	ok, err := s.adapter.DocumentPageExists(ctx, documentID, pageID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", adapter.ErrPageNotFound, documentID, pageID)
	}

	v := &PageView{ID: pageID}
	if v.Name, err = s.adapter.DocumentPageName(ctx, documentID, pageID); err != nil {
		return nil, err
	}
	if v.FileURL, err = s.adapter.DocumentPageFileURL(ctx, documentID, pageID); err != nil {
		return nil, err
	}
	if v.Transcription, err = s.adapter.DocumentPageTranscription(ctx, pageID); err != nil {
		return nil, err
	}
	if v.Status, err = s.adapter.DocumentPageTranscriptionStatus(ctx, pageID); err != nil {
		return nil, err
	}
	if v.TranscriptionImported, err = s.adapter.DocumentPageTranscriptionIsImported(ctx, documentID, pageID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *transcriptionService) RecalculateProgress(ctx context.Context, documentID string) (model.Progress, error) {
	pages, err := s.adapter.DocumentPages(ctx, documentID)
	if err != nil {
		return model.Progress{}, err
	}

	var completed, review int
	for _, p := range pages {
		status, err := s.adapter.DocumentPageTranscriptionStatus(ctx, p.ID)
		if err != nil {
			return model.Progress{}, err
		}
		switch status {
		case model.StatusCompleted:
			completed++
		case model.StatusNeedsReview:
			review++
		}
	}

	progress := model.Progress{
		Completed:   strconv.Itoa(percent(completed, len(pages))),
		NeedsReview: strconv.Itoa(percent(review, len(pages))),
	}
	if err := s.adapter.ImportDocumentTranscriptionProgress(ctx, documentID, progress.Completed, progress.NeedsReview); err != nil {
		return model.Progress{}, fmt.Errorf("import progress: %w", err)
	}

	logging.FromContext(ctx).Info("progress_recalculated",
		"document_id", documentID,
		"pages", len(pages),
		"completed", progress.Completed,
		"needs_review", progress.NeedsReview,
	)
	return progress, nil
}

func (s *transcriptionService) ExportDocument(ctx context.Context, documentID string) (string, error) {
	pages, err := s.adapter.DocumentPages(ctx, documentID)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		text, err := s.adapter.DocumentPageTranscription(ctx, p.ID)
		if err != nil {
			return "", err
		}
		if text != nil {
			parts = append(parts, *text)
		}
	}

	doc := strings.Join(parts, "\n\n")
	if err := s.adapter.ImportDocumentTranscription(ctx, documentID, doc); err != nil {
		return "", fmt.Errorf("import document transcription: %w", err)
	}

	logging.FromContext(ctx).Info("document_exported",
		"document_id", documentID,
		"pages", len(pages),
		"transcribed_pages", len(parts),
	)
	return doc, nil
}

// percent floors count/total*100. An empty document is 0% done.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return count * 100 / total
}
