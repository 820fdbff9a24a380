package model

import "time"

// Item is a repository entity that the workflow engine treats as a transcribable document.
// Its title and transcription metadata live in element texts, not in columns.
type Item struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// File is a binary attachment of an item. Each file is one page of the document.
// Position defines the native attachment order within the item.
type File struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	Position         int       `json:"position"`
	OriginalFilename string    `json:"original_filename"`
	StoragePath      string    `json:"storage_path"`
	ContentType      string    `json:"content_type"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
	ModifiedAt       time.Time `json:"modified_at"`
}

// PageRef is one entry of a document's ordered page listing.
type PageRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Progress holds the document-level percentages as stored (string form, "0" means unset).
type Progress struct {
	Completed   string `json:"completed"`
	NeedsReview string `json:"needs_review"`
}
