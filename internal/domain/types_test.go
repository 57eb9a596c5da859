package domain

import "testing"

func TestPageDerivations(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		page       int
		size       int
		totalPages int
		hasPrev    bool
		hasNext    bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"single partial page", 7, 1, 10, 1, false, false},
		{"exact fit", 20, 2, 10, 2, true, false},
		{"first of two", 12, 1, 10, 2, false, true},
		{"last of two", 12, 2, 10, 2, true, false},
		{"middle", 35, 2, 10, 4, true, true},
	}
	for _, tc := range cases {
		p := Page[int]{TotalCount: tc.total, PageNumber: tc.page, PageSize: tc.size}
		if got := p.TotalPages(); got != tc.totalPages {
			t.Fatalf("%s: TotalPages = %d, want %d", tc.name, got, tc.totalPages)
		}
		if got := p.HasPrevious(); got != tc.hasPrev {
			t.Fatalf("%s: HasPrevious = %v, want %v", tc.name, got, tc.hasPrev)
		}
		if got := p.HasNext(); got != tc.hasNext {
			t.Fatalf("%s: HasNext = %v, want %v", tc.name, got, tc.hasNext)
		}
	}
}

func TestPageZeroSizeDoesNotPanic(t *testing.T) {
	p := Page[string]{TotalCount: 5, PageNumber: 1}
	if p.TotalPages() != 0 {
		t.Fatalf("TotalPages with zero size should be 0")
	}
	if p.HasNext() {
		t.Fatalf("HasNext with zero size should be false")
	}
}
