package utils

import (
	"strings"
	"testing"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"  Go  ":   "go",
		"TUTORIAL": "tutorial",
		"rust":     "rust",
		"":         "",
		"  ":       "",
	}
	for in, want := range cases {
		if got := Canonical(in); got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDedupeFirstSeenKeepsOrder(t *testing.T) {
	got := DedupeFirstSeen([]string{"A", "a", "A", "b", "a"})
	want := []string{"A", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPreviewBoundary(t *testing.T) {
	exact := strings.Repeat("x", 150)
	if got := Preview(exact, 150); got != exact {
		t.Fatalf("content of exactly 150 chars must be returned unmodified")
	}

	long := strings.Repeat("y", 151)
	got := Preview(long, 150)
	if len(got) != 153 {
		t.Fatalf("preview length = %d, want 153", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("preview must end with ellipsis marker, got %q", got[len(got)-5:])
	}
	if got[:150] != long[:150] {
		t.Fatalf("preview must keep the first 150 characters")
	}

	short := "hello"
	if got := Preview(short, 150); got != short {
		t.Fatalf("short content must pass through, got %q", got)
	}
}
