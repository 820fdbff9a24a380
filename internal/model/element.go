package model

import "time"

// RecordType names the kind of entity an element text is attached to.
type RecordType string

const (
	RecordItem RecordType = "Item"
	RecordFile RecordType = "File"
)

// RecordRef identifies the entity that owns a set of element texts.
type RecordRef struct {
	Type RecordType
	ID   string
}

// ItemRecord returns the record reference for an item.
func ItemRecord(id string) RecordRef { return RecordRef{Type: RecordItem, ID: id} }

// FileRecord returns the record reference for a file.
func FileRecord(id string) RecordRef { return RecordRef{Type: RecordFile, ID: id} }

// ElementSet is a named group of metadata fields (e.g. "Dublin Core").
type ElementSet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Element is a named metadata field within an element set.
type Element struct {
	ID           int64  `json:"id"`
	ElementSetID int64  `json:"element_set_id"`
	SetName      string `json:"set_name"`
	Name         string `json:"name"`
}

// ElementText is one stored value of an element on a record. The store allows
// several values per element; callers that need a single value enforce it themselves.
type ElementText struct {
	ID         int64      `json:"id"`
	RecordType RecordType `json:"record_type"`
	RecordID   string     `json:"record_id"`
	ElementID  int64      `json:"element_id"`
	Text       string     `json:"text"`
	HTML       bool       `json:"html"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FieldRef binds a semantic datum to an element by (set name, element name).
type FieldRef struct {
	Set  string `toml:"set" json:"set"`
	Name string `toml:"name" json:"name"`
}

func (f FieldRef) String() string { return f.Set + "/" + f.Name }

// FieldBindings maps every datum the adapter reads or writes to its element.
type FieldBindings struct {
	Title              FieldRef `toml:"title"`
	Transcription      FieldRef `toml:"transcription"`
	Status             FieldRef `toml:"status"`
	PercentCompleted   FieldRef `toml:"percent_completed"`
	PercentNeedsReview FieldRef `toml:"percent_needs_review"`
	SortWeight         FieldRef `toml:"sort_weight"`
}

const (
	DublinCoreSet = "Dublin Core"
	WorkflowSet   = "Scripto"
)

// DefaultFieldBindings returns the bindings seeded by the schema migrations.
func DefaultFieldBindings() FieldBindings {
	return FieldBindings{
		Title:              FieldRef{Set: DublinCoreSet, Name: "Title"},
		Transcription:      FieldRef{Set: WorkflowSet, Name: "Transcription"},
		Status:             FieldRef{Set: WorkflowSet, Name: "Status"},
		PercentCompleted:   FieldRef{Set: WorkflowSet, Name: "Percent Completed"},
		PercentNeedsReview: FieldRef{Set: WorkflowSet, Name: "Percent Needs Review"},
		SortWeight:         FieldRef{Set: WorkflowSet, Name: "Sort Weight"},
	}
}
