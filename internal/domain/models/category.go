package models

// Category is referenced, never owned, by documents. A document's
// category reference must resolve before any write.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategorySummary adds the document count for listing screens.
type CategorySummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"documentCount"`
}
