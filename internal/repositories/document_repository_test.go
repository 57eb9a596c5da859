package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"bacalah/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func int64p(v int64) *int64 { return &v }

func TestBuildSearchWhereAllFilters(t *testing.T) {
	where, args := buildSearchWhere(domain.SearchCriteria{
		Query:      "  Go  ",
		CategoryID: int64p(5),
		TagIDs:     []int64{1, 2},
	})

	if len(where) != 3 {
		t.Fatalf("expected 3 clauses, got %d: %v", len(where), where)
	}
	if !strings.Contains(where[0], "LOWER(d.title) LIKE ?") {
		t.Fatalf("first clause must be the free-text filter, got %q", where[0])
	}
	if where[1] != "d.category_id = ?" {
		t.Fatalf("second clause must be the category filter, got %q", where[1])
	}
	if !strings.Contains(where[2], "dt.tag_id IN (?,?)") {
		t.Fatalf("third clause must be the tag filter, got %q", where[2])
	}

	want := []any{"%go%", "%go%", int64(5), int64(1), int64(2)}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildSearchWhereEscapesLikeWildcards(t *testing.T) {
	cases := map[string]string{
		"50%_off":  `%50\%\_off%`,
		`back\set`: `%back\\set%`,
		"plain":    "%plain%",
	}
	for q, wantArg := range cases {
		_, args := buildSearchWhere(domain.SearchCriteria{Query: q})
		if len(args) != 2 {
			t.Fatalf("query %q: expected two LIKE args, got %v", q, args)
		}
		if args[0] != wantArg || args[1] != wantArg {
			t.Fatalf("query %q: LIKE arg = %v, want %q", q, args[0], wantArg)
		}
	}
}

func TestBuildSearchWhereBlankQuerySkipsTextFilter(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		where, args := buildSearchWhere(domain.SearchCriteria{Query: q})
		if len(where) != 0 || len(args) != 0 {
			t.Fatalf("blank query %q must disable the text filter, got %v", q, where)
		}
	}
}

func TestBuildSearchWhereUncategorizedSentinel(t *testing.T) {
	where, args := buildSearchWhere(domain.SearchCriteria{CategoryID: int64p(0)})
	if len(where) != 1 || where[0] != "d.category_id IS NULL" {
		t.Fatalf("sentinel must filter on NULL category, got %v", where)
	}
	if len(args) != 0 {
		t.Fatalf("NULL filter takes no args, got %v", args)
	}
}

func TestSortClause(t *testing.T) {
	cases := []struct {
		sortBy string
		desc   bool
		want   string
	}{
		{"title", false, "d.title ASC, d.id ASC"},
		{"Title", true, "d.title DESC, d.id ASC"},
		{"createdat", false, "d.created_at ASC, d.id ASC"},
		{"CreatedAt", true, "d.created_at DESC, d.id ASC"},
		{"", false, "d.updated_at DESC, d.id ASC"},
		{"", true, "d.updated_at DESC, d.id ASC"},
		{"banana", false, "d.updated_at DESC, d.id ASC"},
		{"updatedat", true, "d.updated_at DESC, d.id ASC"},
	}
	for _, tc := range cases {
		if got := sortClause(tc.sortBy, tc.desc); got != tc.want {
			t.Fatalf("sortClause(%q, %v) = %q, want %q", tc.sortBy, tc.desc, got, tc.want)
		}
	}
}

func documentColumns() []string {
	return []string{"id", "title", "content", "user_id", "category_id", "created_at", "updated_at", "username", "email", "category_name"}
}

func TestSearchWindowsAfterCounting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`ORDER BY d\.updated_at DESC, d\.id ASC LIMIT \? OFFSET \?`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(documentColumns()).
			AddRow(11, "Eleventh", "body", 1, nil, now, now, "alice", "alice@example.com", "").
			AddRow(12, "Twelfth", "body", 1, nil, now, now, "alice", "alice@example.com", ""))

	repo := DocumentRepository{DB: db}
	rows, total, err := repo.Search(context.Background(), domain.SearchCriteria{
		PageNumber: 2,
		PageSize:   10,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if len(rows) != 2 {
		t.Fatalf("page 2 of 12 with size 10 must hold 2 rows, got %d", len(rows))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchTagFilterArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d WHERE EXISTS \(SELECT 1 FROM document_tags dt`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`dt\.tag_id IN \(\?\)`).
		WithArgs(int64(3), 10, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns()).
			AddRow(1, "Go Guide", "guide body", 1, nil, now, now, "alice", "alice@example.com", ""))

	repo := DocumentRepository{DB: db}
	rows, total, err := repo.Search(context.Background(), domain.SearchCriteria{
		TagIDs:     []int64{3},
		PageNumber: 1,
		PageSize:   10,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Title != "Go Guide" {
		t.Fatalf("tag filter should match exactly the tagged document, got total=%d rows=%v", total, rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE d\.id = \?`).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	repo := DocumentRepository{DB: db}
	_, err = repo.GetByID(context.Background(), 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
