// Package repository defines the content repository ports the adapter consumes.
// Implementations live in subpackages (postgres, sqlite) and contain no business logic.
// Lookups of missing rows return sql.ErrNoRows unchanged.
package repository

import (
	"context"

	"transcribe/internal/model"
)

// ItemRepository gives access to document entities.
type ItemRepository interface {
	// FindByID returns an item by its ID.
	FindByID(ctx context.Context, id string) (*model.Item, error)

	// Touch persists the item after its element texts changed by bumping modified_at.
	// It returns sql.ErrNoRows if the item no longer exists.
	Touch(ctx context.Context, id string) error
}

// FileRepository gives access to the attachments (pages) of an item.
type FileRepository interface {
	// ListByItem returns the files of an item in native attachment order.
	ListByItem(ctx context.Context, itemID string) ([]model.File, error)

	// Touch persists the file after its element texts changed.
	Touch(ctx context.Context, id string) error
}

// ElementRepository resolves metadata fields by name.
type ElementRepository interface {
	// FindByName returns the element called name inside the element set setName.
	FindByName(ctx context.Context, setName, name string) (*model.Element, error)
}

// ElementTextRepository reads and writes the values of an element on a record.
type ElementTextRepository interface {
	// List returns every value of the element on the record, oldest first.
	List(ctx context.Context, rec model.RecordRef, elementID int64) ([]model.ElementText, error)

	// DeleteByElement removes every value of the element on the record.
	DeleteByElement(ctx context.Context, rec model.RecordRef, elementID int64) error

	// Add stores one more value of the element on the record.
	Add(ctx context.Context, rec model.RecordRef, elementID int64, text string, html bool) (*model.ElementText, error)
}

// OptionRepository stores process-wide options as name/value pairs.
type OptionRepository interface {
	// Get returns the option value and whether it is set.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set creates or replaces the option value.
	Set(ctx context.Context, name, value string) error
}

// Store bundles every repository of one backend.
type Store struct {
	Items        ItemRepository
	Files        FileRepository
	Elements     ElementRepository
	ElementTexts ElementTextRepository
	Options      OptionRepository
}
