package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"bacalah/internal/domain/models"
)

func TestGeneratePDF(t *testing.T) {
	loader := func(ctx context.Context, id int64) (models.DocumentDetail, error) {
		return models.DocumentDetail{
			ID:           id,
			Title:        "Go Guide",
			Content:      "A short guide to Go.",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			UserName:     "alice",
			CategoryName: "Programming",
			Tags:         []string{"go", "tutorial"},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GeneratePDF(context.Background(), 1)
	if err != nil {
		t.Fatalf("GeneratePDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GeneratePDF returned empty data")
	}
	if !strings.HasPrefix(filename, "DOC_1_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("a/b:c"); got != "a_b_c" {
		t.Fatalf("got %q", got)
	}
	if got := safeFilenamePart("   "); got != "NA" {
		t.Fatalf("blank title should map to NA, got %q", got)
	}
}
