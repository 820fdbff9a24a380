package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"transcribe/internal/model"
)

// LoadFieldBindings returns the default field bindings with any overrides from
// the TOML file at path applied. An empty path yields the defaults.
//
// Example file:
//
//	[transcription]
//	set = "Transcript"
//	name = "Text"
func LoadFieldBindings(path string) (model.FieldBindings, error) {
	b := model.DefaultFieldBindings()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read field bindings: %w", err)
	}
	return ParseFieldBindings(data)
}

// ParseFieldBindings applies TOML overrides to the default bindings.
// Tables that are absent or partially filled keep their default values.
func ParseFieldBindings(data []byte) (model.FieldBindings, error) {
	var overrides map[string]model.FieldRef
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return model.FieldBindings{}, fmt.Errorf("decode field bindings: %w", err)
	}

	b := model.DefaultFieldBindings()
	targets := map[string]*model.FieldRef{
		"title":                &b.Title,
		"transcription":        &b.Transcription,
		"status":               &b.Status,
		"percent_completed":    &b.PercentCompleted,
		"percent_needs_review": &b.PercentNeedsReview,
		"sort_weight":          &b.SortWeight,
	}
	for key, ref := range overrides {
		dst, ok := targets[key]
		if !ok {
			return model.FieldBindings{}, fmt.Errorf("unknown field binding %q", key)
		}
		if ref.Set != "" {
			dst.Set = ref.Set
		}
		if ref.Name != "" {
			dst.Name = ref.Name
		}
	}
	return b, nil
}
