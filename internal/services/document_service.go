package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "bacalah/internal/config"
	"bacalah/internal/domain"
	"bacalah/internal/domain/models"
	"bacalah/internal/repositories"
	"bacalah/internal/utils"
)

// DocumentService owns document reads and writes. Writes validate the
// category reference, stamp timestamps, and reconcile tags in the same
// transaction as the document row.
type DocumentService struct {
	DB           *sql.DB
	DocumentRepo repositories.DocumentRepository
	CategoryRepo repositories.CategoryRepository
	TagRepo      repositories.TagRepository
	RequestID    string

	// Now is the clock; tests override it.
	Now func() time.Time
}

// DocumentInput is the create/update payload after DTO binding.
type DocumentInput struct {
	Title      string
	Content    string
	CategoryID *int64
	Tags       []string
}

func (s DocumentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocumentService) documentRepo() repositories.DocumentRepository {
	if s.DocumentRepo.DB != nil {
		return s.DocumentRepo
	}
	return repositories.DocumentRepository{DB: s.db()}
}

func (s DocumentService) categoryRepo() repositories.CategoryRepository {
	if s.CategoryRepo.DB != nil {
		return s.CategoryRepo
	}
	return repositories.CategoryRepository{DB: s.db()}
}

func (s DocumentService) tags() TagService {
	return TagService{DB: s.db(), TagRepo: s.TagRepo, RequestID: s.RequestID}
}

func (s DocumentService) search() SearchService {
	return SearchService{DB: s.db(), DocumentRepo: s.DocumentRepo, TagRepo: s.TagRepo, RequestID: s.RequestID}
}

func (s DocumentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// GetByID returns the full document detail including content and tags.
func (s DocumentService) GetByID(ctx context.Context, id int64) (models.DocumentDetail, error) {
	row, err := s.documentRepo().GetByID(ctx, id)
	if err != nil {
		return models.DocumentDetail{}, err
	}

	tagNames, err := s.tags().tagRepo().NamesByDocumentIDs(ctx, []int64{id})
	if err != nil {
		return models.DocumentDetail{}, err
	}
	tags := tagNames[id]
	if tags == nil {
		tags = []string{}
	}

	return models.DocumentDetail{
		ID:           row.ID,
		Title:        row.Title,
		Content:      row.Content,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		UserID:       row.UserID,
		UserName:     displayName(row),
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Tags:         tags,
	}, nil
}

// List returns documents ordered by updated_at descending.
func (s DocumentService) List(ctx context.Context, pageNumber, pageSize int) (domain.Page[models.DocumentSummary], error) {
	return s.search().Search(ctx, domain.SearchCriteria{
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
}

// ListByCategory pages documents of one category; a categoryID of 0
// selects the uncategorized ones.
func (s DocumentService) ListByCategory(ctx context.Context, categoryID int64, pageNumber, pageSize int) (domain.Page[models.DocumentSummary], error) {
	return s.search().Search(ctx, domain.SearchCriteria{
		CategoryID: &categoryID,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
}

// Recent returns the most recently updated documents.
func (s DocumentService) Recent(ctx context.Context, count int) ([]models.DocumentSummary, error) {
	rows, err := s.documentRepo().Recent(ctx, count)
	if err != nil {
		return nil, err
	}
	return s.search().summarize(ctx, rows)
}

// Create writes a new document and its tag associations atomically.
func (s DocumentService) Create(ctx context.Context, in DocumentInput, userID int64) (models.DocumentDetail, error) {
	if err := validateInput(in); err != nil {
		return models.DocumentDetail{}, err
	}

	var docID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		id, err := s.documentRepo().Insert(ctx, tx, strings.TrimSpace(in.Title), in.Content, userID, in.CategoryID, s.now())
		if err != nil {
			return err
		}
		docID = id
		return s.tags().Reconcile(ctx, tx, id, in.Tags)
	})
	if err != nil {
		return models.DocumentDetail{}, err
	}

	utils.LogEvent(s.RequestID, "documents", "create", fmt.Sprintf("document_id=%d", docID))
	return s.GetByID(ctx, docID)
}

// Update rewrites the document row, refreshes updated_at, and
// reconciles tags in the same transaction. Only the owner may update.
func (s DocumentService) Update(ctx context.Context, id int64, in DocumentInput, userID int64) (models.DocumentDetail, error) {
	if err := validateInput(in); err != nil {
		return models.DocumentDetail{}, err
	}
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return models.DocumentDetail{}, err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		if err := s.documentRepo().Update(ctx, tx, id, strings.TrimSpace(in.Title), in.Content, in.CategoryID, s.now()); err != nil {
			return err
		}
		return s.tags().Reconcile(ctx, tx, id, in.Tags)
	})
	if err != nil {
		return models.DocumentDetail{}, err
	}

	utils.LogEvent(s.RequestID, "documents", "update", fmt.Sprintf("document_id=%d", id))
	return s.GetByID(ctx, id)
}

// Delete removes the document; associations go with it via cascade.
func (s DocumentService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return err
	}
	if err := s.documentRepo().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "documents", "delete", fmt.Sprintf("document_id=%d", id))
	return nil
}

func (s DocumentService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db().BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageError{Op: "begin tx", Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit tx", Err: err}
	}
	return nil
}

// checkCategory enforces the reference precondition inside the write tx
// so no partial state can persist when it fails.
func (s DocumentService) checkCategory(ctx context.Context, tx *sql.Tx, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	ok, err := s.categoryRepo().Exists(ctx, tx, *categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationError{Field: "categoryId", Msg: "category does not exist"}
	}
	return nil
}

// checkOwner hides other users' documents behind not-found.
func (s DocumentService) checkOwner(ctx context.Context, id, userID int64) error {
	ownerID, err := s.documentRepo().OwnerID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return domain.NotFoundError{Resource: "document"}
	}
	return nil
}

func validateInput(in DocumentInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "title is required"}
	}
	return nil
}
