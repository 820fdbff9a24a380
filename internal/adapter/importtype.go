package adapter

import (
	"context"
	"fmt"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// ImportTypeSource yields the storage mode for transcription text.
// Implementations are read on every import so option changes apply to the next call.
type ImportTypeSource interface {
	ImportType(ctx context.Context) (model.ImportType, error)
}

// StaticImportType always returns the same mode.
type StaticImportType model.ImportType

func (s StaticImportType) ImportType(context.Context) (model.ImportType, error) {
	return model.ImportType(s), nil
}

// OptionImportType reads the transcription_import_type option row and falls back
// to Default while the row is unset.
type OptionImportType struct {
	Options repository.OptionRepository
	Default model.ImportType
}

func (o OptionImportType) ImportType(ctx context.Context) (model.ImportType, error) {
	v, ok, err := o.Options.Get(ctx, model.ImportTypeOption)
	if err != nil {
		return "", fmt.Errorf("read %s option: %w", model.ImportTypeOption, err)
	}
	if !ok {
		return o.Default, nil
	}
	return model.ParseImportType(v)
}
