package models

import "time"

// Tag is a vocabulary entry. Name uniqueness is case-insensitive; the
// stored name keeps the casing of whoever created it first.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagSummary adds the association count for listing screens.
type TagSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"documentCount"`
}

// DocumentTag links one document to one tag. The pair is unique; the
// whole set for a document is replaced on every reconciliation pass.
type DocumentTag struct {
	DocumentID int64
	TagID      int64
	CreatedAt  time.Time
}
