package model

import (
	"fmt"
	"strings"
)

// Page transcription statuses as the workflow engine understands them.
// The adapter stores the status as free text.
const (
	StatusNotStarted  = "Not Started"
	StatusInProgress  = "In Progress"
	StatusNeedsReview = "Needs Review"
	StatusCompleted   = "Completed"
)

// ImportType selects how transcription text is flagged when stored.
type ImportType string

const (
	ImportPlain ImportType = "plain"
	ImportHTML  ImportType = "html"
)

// ImportTypeOption is the name of the process-wide option holding the import type.
const ImportTypeOption = "transcription_import_type"

// ParseImportType accepts "plain"/"text" and "html"/"rich", case-insensitively.
func ParseImportType(s string) (ImportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text":
		return ImportPlain, nil
	case "html", "rich":
		return ImportHTML, nil
	default:
		return "", fmt.Errorf("unknown transcription import type %q", s)
	}
}

// IsHTML reports whether values should be stored with the html flag set.
func (t ImportType) IsHTML() bool { return t == ImportHTML }
