// Package adapter maps the workflow engine's document model (a document made of
// ordered pages, each with a transcription and a status) onto the content
// repository's element-set metadata model.
//
// Documents are items and pages are the item's files in attachment order. Every
// datum the engine writes lives in exactly one element (see model.FieldBindings)
// and holds at most one value: writes clear all stored values before adding the
// new one. The adapter keeps no state between calls.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"transcribe/internal/model"
	"transcribe/internal/repository"
	"transcribe/internal/storage"
)

var (
	// ErrDocumentNotFound covers both missing items and items without files.
	ErrDocumentNotFound = errors.New("document not found")
	ErrPageNotFound     = errors.New("page not found in document")
	ErrNoPages          = errors.New("document has no pages")
	// ErrFieldNotFound means a bound element is missing from the repository schema.
	ErrFieldNotFound     = errors.New("metadata field not found")
	ErrInvalidProgress   = errors.New("progress must be an integer between 0 and 100")
	ErrInvalidSortWeight = errors.New("sort weight must be between 0 and 999999999")
	ErrUnknownBackend    = errors.New("unknown adapter backend")
	ErrIDRequired        = errors.New("id is required")
)

// BackendElementSets stores engine data in element texts of items and files.
const BackendElementSets = "element-sets"

// Adapter is the capability set the workflow engine needs from a repository backend.
type Adapter interface {
	// DocumentExists reports whether the document resolves and has at least one page.
	DocumentExists(ctx context.Context, documentID string) (bool, error)
	// DocumentPageExists reports whether the document is valid and pageID is one of its pages.
	DocumentPageExists(ctx context.Context, documentID, pageID string) (bool, error)
	// DocumentPages lists the pages in native attachment order with their derived names.
	DocumentPages(ctx context.Context, documentID string) ([]model.PageRef, error)
	// DocumentFirstPageID returns the first page in native order, or ErrNoPages.
	DocumentFirstPageID(ctx context.Context, documentID string) (string, error)
	// DocumentTitle returns the document title, "" when unset.
	DocumentTitle(ctx context.Context, documentID string) (string, error)
	// DocumentPageName derives the page name exactly as DocumentPages does.
	DocumentPageName(ctx context.Context, documentID, pageID string) (string, error)
	// DocumentPageFileURL resolves the download location of the page file.
	DocumentPageFileURL(ctx context.Context, documentID, pageID string) (string, error)
	// DocumentPageTranscription returns nil when no transcription was ever imported.
	DocumentPageTranscription(ctx context.Context, pageID string) (*string, error)
	// DocumentTranscription returns nil when no document transcription was ever imported.
	DocumentTranscription(ctx context.Context, documentID string) (*string, error)
	// ImportDocumentPageTranscription overwrites the page transcription.
	ImportDocumentPageTranscription(ctx context.Context, documentID, pageID, text string) error
	// ImportDocumentTranscription overwrites the whole-document transcription.
	ImportDocumentTranscription(ctx context.Context, documentID, text string) error
	// DocumentPageTranscriptionStatus returns the page status, "Not Started" when unset.
	DocumentPageTranscriptionStatus(ctx context.Context, pageID string) (string, error)
	// ImportPageTranscriptionStatus overwrites the page status. An empty status clears it.
	ImportPageTranscriptionStatus(ctx context.Context, documentID, pageID, status string) error
	// ImportDocumentTranscriptionProgress overwrites both percentages. "0" is not stored.
	ImportDocumentTranscriptionProgress(ctx context.Context, documentID, completed, needsReview string) error
	// ImportItemSortWeight stores weight as a nine digit sort key.
	ImportItemSortWeight(ctx context.Context, documentID string, weight int) error
	// DocumentTranscriptionIsImported reports whether a document transcription is stored.
	DocumentTranscriptionIsImported(ctx context.Context, documentID string) (bool, error)
	// DocumentPageTranscriptionIsImported reports whether a page transcription is stored.
	DocumentPageTranscriptionIsImported(ctx context.Context, documentID, pageID string) (bool, error)
}

// Deps are the collaborators of an adapter backend.
type Deps struct {
	Store   repository.Store
	Storage storage.Storage
	// ImportType is consulted on every transcription import.
	ImportType ImportTypeSource
	// Bindings default to model.DefaultFieldBindings when zero.
	Bindings model.FieldBindings
	Logger   *slog.Logger
	Metrics  *Metrics
	Tracer   trace.Tracer
}

// New builds the adapter implementation registered for backend.
func New(backend string, d Deps) (Adapter, error) {
	switch backend {
	case BackendElementSets:
		return newElementSets(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func (d *Deps) defaults() error {
	s := d.Store
	if s.Items == nil || s.Files == nil || s.Elements == nil || s.ElementTexts == nil {
		return errors.New("adapter: incomplete repository store")
	}
	if d.Storage == nil {
		return errors.New("adapter: storage is required")
	}
	if d.ImportType == nil {
		return errors.New("adapter: import type source is required")
	}
	if d.Bindings == (model.FieldBindings{}) {
		d.Bindings = model.DefaultFieldBindings()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Tracer == nil {
		d.Tracer = otel.Tracer("transcribe/internal/adapter")
	}
	return nil
}
