package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"transcribe/internal/logging"
	"transcribe/internal/model"
	"transcribe/internal/repository"
	"transcribe/internal/sanitize"
	"transcribe/internal/storage"
)

const maxSortWeight = 999999999

// elementSets is the Adapter backed by element texts on items and files.
type elementSets struct {
	store      repository.Store
	files      storage.Storage
	importType ImportTypeSource
	fields     model.FieldBindings
	log        *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
}

var _ Adapter = (*elementSets)(nil)

func newElementSets(d Deps) (*elementSets, error) {
	if err := d.defaults(); err != nil {
		return nil, err
	}
	return &elementSets{
		store:      d.Store,
		files:      d.Storage,
		importType: d.ImportType,
		fields:     d.Bindings,
		log:        d.Logger.With("component", "adapter", "backend", BackendElementSets),
		metrics:    d.Metrics,
		tracer:     d.Tracer,
	}, nil
}

func (a *elementSets) DocumentExists(ctx context.Context, documentID string) (ok bool, err error) {
	ctx, span := a.start(ctx, "DocumentExists", documentID, "")
	defer func() { finish(span, err) }()

	if _, err = a.validDocument(ctx, documentID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *elementSets) DocumentPageExists(ctx context.Context, documentID, pageID string) (ok bool, err error) {
	ctx, span := a.start(ctx, "DocumentPageExists", documentID, pageID)
	defer func() { finish(span, err) }()

	if _, err = a.documentPage(ctx, documentID, pageID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrPageNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *elementSets) DocumentPages(ctx context.Context, documentID string) (pages []model.PageRef, err error) {
	ctx, span := a.start(ctx, "DocumentPages", documentID, "")
	defer func() { finish(span, err) }()

	files, err := a.validDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	pages = make([]model.PageRef, 0, len(files))
	for _, f := range files {
		name, err := a.pageName(ctx, f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, model.PageRef{ID: f.ID, Name: name})
	}
	return pages, nil
}

func (a *elementSets) DocumentFirstPageID(ctx context.Context, documentID string) (id string, err error) {
	ctx, span := a.start(ctx, "DocumentFirstPageID", documentID, "")
	defer func() { finish(span, err) }()

	if err = a.item(ctx, documentID); err != nil {
		return "", err
	}
	files, err := a.store.Files.ListByItem(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("list files of item %s: %w", documentID, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoPages, documentID)
	}
	return files[0].ID, nil
}

func (a *elementSets) DocumentTitle(ctx context.Context, documentID string) (title string, err error) {
	ctx, span := a.start(ctx, "DocumentTitle", documentID, "")
	defer func() { finish(span, err) }()

	if err = a.item(ctx, documentID); err != nil {
		return "", err
	}
	title, _, err = a.firstValue(ctx, model.ItemRecord(documentID), a.fields.Title)
	return title, err
}

func (a *elementSets) DocumentPageName(ctx context.Context, documentID, pageID string) (name string, err error) {
	ctx, span := a.start(ctx, "DocumentPageName", documentID, pageID)
	defer func() { finish(span, err) }()

	f, err := a.documentPage(ctx, documentID, pageID)
	if err != nil {
		return "", err
	}
	return a.pageName(ctx, *f)
}

func (a *elementSets) DocumentPageFileURL(ctx context.Context, documentID, pageID string) (u string, err error) {
	ctx, span := a.start(ctx, "DocumentPageFileURL", documentID, pageID)
	defer func() { finish(span, err) }()

	f, err := a.documentPage(ctx, documentID, pageID)
	if err != nil {
		return "", err
	}
	u, err = a.files.FileURL(ctx, f.StoragePath)
	if err != nil {
		return "", fmt.Errorf("resolve file url of page %s: %w", pageID, err)
	}
	return u, nil
}

func (a *elementSets) DocumentPageTranscription(ctx context.Context, pageID string) (text *string, err error) {
	ctx, span := a.start(ctx, "DocumentPageTranscription", "", pageID)
	defer func() { finish(span, err) }()

	return a.optionalValue(ctx, model.FileRecord(pageID), a.fields.Transcription)
}

func (a *elementSets) DocumentTranscription(ctx context.Context, documentID string) (text *string, err error) {
	ctx, span := a.start(ctx, "DocumentTranscription", documentID, "")
	defer func() { finish(span, err) }()

	return a.optionalValue(ctx, model.ItemRecord(documentID), a.fields.Transcription)
}

func (a *elementSets) ImportDocumentPageTranscription(ctx context.Context, documentID, pageID, text string) (err error) {
	ctx, span := a.start(ctx, "ImportDocumentPageTranscription", documentID, pageID)
	defer func() { finish(span, err) }()

	if _, err = a.documentPage(ctx, documentID, pageID); err != nil {
		return err
	}
	return a.importTranscription(ctx, model.FileRecord(pageID), text)
}

func (a *elementSets) ImportDocumentTranscription(ctx context.Context, documentID, text string) (err error) {
	ctx, span := a.start(ctx, "ImportDocumentTranscription", documentID, "")
	defer func() { finish(span, err) }()

	if _, err = a.validDocument(ctx, documentID); err != nil {
		return err
	}
	return a.importTranscription(ctx, model.ItemRecord(documentID), text)
}

func (a *elementSets) DocumentPageTranscriptionStatus(ctx context.Context, pageID string) (status string, err error) {
	ctx, span := a.start(ctx, "DocumentPageTranscriptionStatus", "", pageID)
	defer func() { finish(span, err) }()

	status, ok, err := a.firstValue(ctx, model.FileRecord(pageID), a.fields.Status)
	if err != nil {
		return "", err
	}
	if !ok || status == "" {
		return model.StatusNotStarted, nil
	}
	return status, nil
}

func (a *elementSets) ImportPageTranscriptionStatus(ctx context.Context, documentID, pageID, status string) (err error) {
	ctx, span := a.start(ctx, "ImportPageTranscriptionStatus", documentID, pageID)
	defer func() { finish(span, err) }()

	if _, err = a.documentPage(ctx, documentID, pageID); err != nil {
		return err
	}
	rec := model.FileRecord(pageID)
	if status == "" {
		err = a.clearField(ctx, rec, a.fields.Status)
	} else {
		err = a.replaceField(ctx, rec, a.fields.Status, status, false)
	}
	if err != nil {
		return err
	}
	if err = a.touch(ctx, rec); err != nil {
		return err
	}
	a.logger(ctx).Info("page_status_imported", "document_id", documentID, "page_id", pageID, "status", status)
	return nil
}

func (a *elementSets) ImportDocumentTranscriptionProgress(ctx context.Context, documentID, completed, needsReview string) (err error) {
	ctx, span := a.start(ctx, "ImportDocumentTranscriptionProgress", documentID, "")
	defer func() { finish(span, err) }()

	c, err := parseProgress(completed)
	if err != nil {
		return err
	}
	r, err := parseProgress(needsReview)
	if err != nil {
		return err
	}
	if _, err = a.validDocument(ctx, documentID); err != nil {
		return err
	}

	rec := model.ItemRecord(documentID)
	if err = a.writeProgress(ctx, rec, a.fields.PercentCompleted, c); err != nil {
		return err
	}
	if err = a.writeProgress(ctx, rec, a.fields.PercentNeedsReview, r); err != nil {
		return err
	}
	if err = a.touch(ctx, rec); err != nil {
		return err
	}
	a.logger(ctx).Info("document_progress_imported", "document_id", documentID, "completed", c, "needs_review", r)
	return nil
}

func (a *elementSets) ImportItemSortWeight(ctx context.Context, documentID string, weight int) (err error) {
	ctx, span := a.start(ctx, "ImportItemSortWeight", documentID, "")
	defer func() { finish(span, err) }()

	if weight < 0 || weight > maxSortWeight {
		return fmt.Errorf("%w: %d", ErrInvalidSortWeight, weight)
	}
	if _, err = a.validDocument(ctx, documentID); err != nil {
		return err
	}
	rec := model.ItemRecord(documentID)
	if err = a.replaceField(ctx, rec, a.fields.SortWeight, fmt.Sprintf("%09d", weight), false); err != nil {
		return err
	}
	return a.touch(ctx, rec)
}

func (a *elementSets) DocumentTranscriptionIsImported(ctx context.Context, documentID string) (ok bool, err error) {
	ctx, span := a.start(ctx, "DocumentTranscriptionIsImported", documentID, "")
	defer func() { finish(span, err) }()

	if _, err = a.validDocument(ctx, documentID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	return a.hasValue(ctx, model.ItemRecord(documentID), a.fields.Transcription)
}

func (a *elementSets) DocumentPageTranscriptionIsImported(ctx context.Context, documentID, pageID string) (ok bool, err error) {
	ctx, span := a.start(ctx, "DocumentPageTranscriptionIsImported", documentID, pageID)
	defer func() { finish(span, err) }()

	if _, err = a.documentPage(ctx, documentID, pageID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrPageNotFound) {
			return false, nil
		}
		return false, err
	}
	return a.hasValue(ctx, model.FileRecord(pageID), a.fields.Transcription)
}

// importTranscription sanitises text and stores it in the mode the import type source
// reports right now.
func (a *elementSets) importTranscription(ctx context.Context, rec model.RecordRef, text string) error {
	mode, err := a.importType.ImportType(ctx)
	if err != nil {
		return fmt.Errorf("resolve import type: %w", err)
	}
	clean, noisy := text, sanitize.HasNoise(text)
	if noisy {
		clean = sanitize.Transcription(text)
	}
	if err := a.replaceField(ctx, rec, a.fields.Transcription, clean, mode.IsHTML()); err != nil {
		return err
	}
	if err := a.touch(ctx, rec); err != nil {
		return err
	}
	a.logger(ctx).Info("transcription_imported",
		"record_type", string(rec.Type),
		"record_id", rec.ID,
		"import_type", string(mode),
		"length", len(clean),
		"sanitized", noisy,
	)
	return nil
}

// writeProgress stores a percentage. Zero means nothing to record, so the field is only cleared.
func (a *elementSets) writeProgress(ctx context.Context, rec model.RecordRef, field model.FieldRef, pct int) error {
	if pct == 0 {
		return a.clearField(ctx, rec, field)
	}
	return a.replaceField(ctx, rec, field, strconv.Itoa(pct), false)
}

func parseProgress(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProgress, s)
	}
	return n, nil
}

// replaceField is the single write primitive: after it returns nil the field holds
// exactly one value. The delete and the insert are not atomic.
func (a *elementSets) replaceField(ctx context.Context, rec model.RecordRef, field model.FieldRef, text string, html bool) error {
	el, err := a.clearElement(ctx, rec, field)
	if err != nil {
		return err
	}
	if _, err := a.store.ElementTexts.Add(ctx, rec, el.ID, text, html); err != nil {
		return fmt.Errorf("add %s on %s %s: %w", field, rec.Type, rec.ID, err)
	}
	a.metrics.fieldWrite(field.String(), "replace")
	return nil
}

// clearField deletes every value of the field.
func (a *elementSets) clearField(ctx context.Context, rec model.RecordRef, field model.FieldRef) error {
	if _, err := a.clearElement(ctx, rec, field); err != nil {
		return err
	}
	a.metrics.fieldWrite(field.String(), "clear")
	return nil
}

func (a *elementSets) clearElement(ctx context.Context, rec model.RecordRef, field model.FieldRef) (*model.Element, error) {
	el, err := a.element(ctx, field)
	if err != nil {
		return nil, err
	}
	if err := a.store.ElementTexts.DeleteByElement(ctx, rec, el.ID); err != nil {
		return nil, fmt.Errorf("delete %s on %s %s: %w", field, rec.Type, rec.ID, err)
	}
	return el, nil
}

// touch persists the record after its element texts changed.
func (a *elementSets) touch(ctx context.Context, rec model.RecordRef) error {
	var err error
	switch rec.Type {
	case model.RecordItem:
		err = a.store.Items.Touch(ctx, rec.ID)
	default:
		err = a.store.Files.Touch(ctx, rec.ID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		if rec.Type == model.RecordItem {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, rec.ID)
		}
		return fmt.Errorf("%w: %s", ErrPageNotFound, rec.ID)
	}
	if err != nil {
		return fmt.Errorf("persist %s %s: %w", rec.Type, rec.ID, err)
	}
	return nil
}

func (a *elementSets) element(ctx context.Context, field model.FieldRef) (*model.Element, error) {
	el, err := a.store.Elements.FindByName(ctx, field.Set, field.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, field)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve field %s: %w", field, err)
	}
	return el, nil
}

func (a *elementSets) values(ctx context.Context, rec model.RecordRef, field model.FieldRef) ([]model.ElementText, error) {
	el, err := a.element(ctx, field)
	if err != nil {
		return nil, err
	}
	texts, err := a.store.ElementTexts.List(ctx, rec, el.ID)
	if err != nil {
		return nil, fmt.Errorf("read %s on %s %s: %w", field, rec.Type, rec.ID, err)
	}
	return texts, nil
}

func (a *elementSets) firstValue(ctx context.Context, rec model.RecordRef, field model.FieldRef) (string, bool, error) {
	texts, err := a.values(ctx, rec, field)
	if err != nil || len(texts) == 0 {
		return "", false, err
	}
	return texts[0].Text, true, nil
}

func (a *elementSets) optionalValue(ctx context.Context, rec model.RecordRef, field model.FieldRef) (*string, error) {
	v, ok, err := a.firstValue(ctx, rec, field)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (a *elementSets) hasValue(ctx context.Context, rec model.RecordRef, field model.FieldRef) (bool, error) {
	texts, err := a.values(ctx, rec, field)
	if err != nil {
		return false, err
	}
	return len(texts) > 0, nil
}

// pageName prefers the file title and falls back to the original filename.
// Both page listing and single page lookups go through here.
func (a *elementSets) pageName(ctx context.Context, f model.File) (string, error) {
	title, ok, err := a.firstValue(ctx, model.FileRecord(f.ID), a.fields.Title)
	if err != nil {
		return "", err
	}
	if ok && title != "" {
		return title, nil
	}
	return f.OriginalFilename, nil
}

func (a *elementSets) item(ctx context.Context, documentID string) error {
	if documentID == "" {
		return ErrIDRequired
	}
	_, err := a.store.Items.FindByID(ctx, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}
	if err != nil {
		return fmt.Errorf("find item %s: %w", documentID, err)
	}
	return nil
}

// validDocument returns the files of a document that exists and has at least one page.
func (a *elementSets) validDocument(ctx context.Context, documentID string) ([]model.File, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, ErrIDRequired)
	}
	if err := a.item(ctx, documentID); err != nil {
		return nil, err
	}
	files, err := a.store.Files.ListByItem(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list files of item %s: %w", documentID, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrDocumentNotFound, documentID)
	}
	return files, nil
}

// documentPage checks document validity and page membership together.
func (a *elementSets) documentPage(ctx context.Context, documentID, pageID string) (*model.File, error) {
	files, err := a.validDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].ID == pageID {
			return &files[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrPageNotFound, documentID, pageID)
}

func (a *elementSets) logger(ctx context.Context) *slog.Logger {
	if id := logging.RequestID(ctx); id != "" {
		return a.log.With("request_id", id)
	}
	return a.log
}

func (a *elementSets) start(ctx context.Context, op, documentID, pageID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("adapter.backend", BackendElementSets)}
	if documentID != "" {
		attrs = append(attrs, attribute.String("document.id", documentID))
	}
	if pageID != "" {
		attrs = append(attrs, attribute.String("page.id", pageID))
	}
	return a.tracer.Start(ctx, "adapter."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
