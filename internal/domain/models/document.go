package models

import "time"

// Document is an owned free-text entry. CategoryID is nil when the
// document is uncategorized; UpdatedAt is refreshed on every mutation.
type Document struct {
	ID         int64
	Title      string
	Content    string
	UserID     int64
	CategoryID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentSummary is the list/search projection: content truncated to a
// preview, owner and category resolved to display names.
type DocumentSummary struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	ContentPreview string    `json:"contentPreview"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserName       string    `json:"userName"`
	CategoryID     *int64    `json:"categoryId,omitempty"`
	CategoryName   string    `json:"categoryName,omitempty"`
	TagNames       []string  `json:"tagNames"`
}

// DocumentDetail carries the full content for single-document reads.
type DocumentDetail struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UserID       int64     `json:"userId"`
	UserName     string    `json:"userName"`
	CategoryID   *int64    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	Tags         []string  `json:"tags"`
}
