package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportType(t *testing.T) {
	tests := []struct {
		in   string
		want ImportType
	}{
		{"plain", ImportPlain},
		{" Text ", ImportPlain},
		{"html", ImportHTML},
		{"RICH", ImportHTML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImportType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseImportType("markdown")
	assert.Error(t, err)
	_, err = ParseImportType("")
	assert.Error(t, err)
}

func TestImportType_IsHTML(t *testing.T) {
	assert.True(t, ImportHTML.IsHTML())
	assert.False(t, ImportPlain.IsHTML())
	assert.False(t, ImportType("").IsHTML())
}

func TestFieldRef_String(t *testing.T) {
	b := DefaultFieldBindings()
	assert.Equal(t, "Scripto/Transcription", b.Transcription.String())
	assert.Equal(t, "Dublin Core/Title", b.Title.String())
}
