package services

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"bacalah/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func documentColumns() []string {
	return []string{"id", "title", "content", "user_id", "category_id", "created_at", "updated_at", "username", "email", "category_name"}
}

func TestSearchShapesSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	longContent := strings.Repeat("a", 200)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`ORDER BY d\.updated_at DESC, d\.id ASC LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns()).
			AddRow(1, "Go Guide", longContent, 1, int64(4), now, now, "", "alice@example.com", "Programming").
			AddRow(2, "Short", "tiny", 2, nil, now, now, "bob", "bob@example.com", ""))
	mock.ExpectQuery(`FROM document_tags dt`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"document_id", "name"}).
			AddRow(1, "go").
			AddRow(1, "tutorial"))

	svc := SearchService{DB: db}
	page, err := svc.Search(context.Background(), domain.SearchCriteria{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	first := page.Items[0]
	require.Equal(t, int64(1), first.ID)
	require.Len(t, first.ContentPreview, 153)
	require.True(t, strings.HasSuffix(first.ContentPreview, "..."))
	// no username set: fall back to the email address
	require.Equal(t, "alice@example.com", first.UserName)
	require.Equal(t, "Programming", first.CategoryName)
	require.Equal(t, []string{"go", "tutorial"}, first.TagNames)

	second := page.Items[1]
	require.Equal(t, "tiny", second.ContentPreview)
	require.Equal(t, "bob", second.UserName)
	require.Empty(t, second.CategoryName)
	require.Equal(t, []string{}, second.TagNames)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPaginationBoundary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	pageOne := sqlmock.NewRows(documentColumns())
	args := []driver.Value{}
	for i := 1; i <= 10; i++ {
		pageOne.AddRow(int64(i), "Doc", "body", 1, nil, now, now, "alice", "alice@example.com", "")
		args = append(args, int64(i))
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(pageOne)
	mock.ExpectQuery(`FROM document_tags dt`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"document_id", "name"}))

	svc := SearchService{DB: db}
	page, err := svc.Search(context.Background(), domain.SearchCriteria{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 10)
	require.Equal(t, 12, page.TotalCount)
	require.Equal(t, 2, page.TotalPages())
	require.True(t, page.HasNext())
	require.False(t, page.HasPrevious())

	// page 2 holds the remaining two documents
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`LIMIT \? OFFSET \?`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(documentColumns()).
			AddRow(int64(11), "Doc", "body", 1, nil, now, now, "alice", "alice@example.com", "").
			AddRow(int64(12), "Doc", "body", 1, nil, now, now, "alice", "alice@example.com", ""))
	mock.ExpectQuery(`FROM document_tags dt`).
		WithArgs(int64(11), int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"document_id", "name"}))

	page, err = svc.Search(context.Background(), domain.SearchCriteria{PageNumber: 2, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	require.False(t, page.HasNext())
	require.True(t, page.HasPrevious())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchBlankQueryMatchesUnfiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// the $ anchor rejects any composed WHERE clause: a blank query must
	// count the whole collection
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	svc := SearchService{DB: db}
	page, err := svc.Search(context.Background(), domain.SearchCriteria{Query: "   ", PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}
