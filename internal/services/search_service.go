package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "bacalah/internal/config"
	"bacalah/internal/domain"
	"bacalah/internal/domain/models"
	"bacalah/internal/repositories"
	"bacalah/internal/utils"
)

// previewLimit is the summary cut-off; content longer than this gets an
// ellipsis marker appended after the cut.
const previewLimit = 150

// SearchService builds filtered, sorted, paginated document views from
// arbitrary combinations of free-text, category, and tag criteria.
// Read-only; safe for unbounded concurrent use.
type SearchService struct {
	DB           *sql.DB
	DocumentRepo repositories.DocumentRepository
	TagRepo      repositories.TagRepository
	RequestID    string
}

func (s SearchService) documentRepo() repositories.DocumentRepository {
	if s.DocumentRepo.DB != nil {
		return s.DocumentRepo
	}
	return repositories.DocumentRepository{DB: s.db()}
}

func (s SearchService) tagRepo() repositories.TagRepository {
	if s.TagRepo.DB != nil {
		return s.TagRepo
	}
	return repositories.TagRepository{DB: s.db()}
}

func (s SearchService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Search runs the retrieval plan for the given criteria and shapes each
// hit into a summary projection.
func (s SearchService) Search(ctx context.Context, criteria domain.SearchCriteria) (domain.Page[models.DocumentSummary], error) {
	rows, total, err := s.documentRepo().Search(ctx, criteria)
	if err != nil {
		return domain.Page[models.DocumentSummary]{}, err
	}

	items, err := s.summarize(ctx, rows)
	if err != nil {
		return domain.Page[models.DocumentSummary]{}, err
	}

	utils.LogEvent(s.RequestID, "search", "search",
		fmt.Sprintf("total=%d page=%d size=%d", total, criteria.PageNumber, criteria.PageSize))

	return domain.Page[models.DocumentSummary]{
		Items:      items,
		TotalCount: total,
		PageNumber: criteria.PageNumber,
		PageSize:   criteria.PageSize,
	}, nil
}

// summarize resolves tag names for a batch of rows and projects them.
func (s SearchService) summarize(ctx context.Context, rows []repositories.DocumentRow) ([]models.DocumentSummary, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tagNames, err := s.tagRepo().NamesByDocumentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.DocumentSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, summarizeRow(row, tagNames[row.ID]))
	}
	return items, nil
}

func summarizeRow(row repositories.DocumentRow, tags []string) models.DocumentSummary {
	if tags == nil {
		tags = []string{}
	}
	return models.DocumentSummary{
		ID:             row.ID,
		Title:          row.Title,
		ContentPreview: utils.Preview(row.Content, previewLimit),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		UserName:       displayName(row),
		CategoryID:     row.CategoryID,
		CategoryName:   row.CategoryName,
		TagNames:       tags,
	}
}

// displayName prefers the username and falls back to the email address.
func displayName(row repositories.DocumentRow) string {
	if row.Username != "" {
		return row.Username
	}
	return row.Email
}
