package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "bacalah/internal/config"
	"bacalah/internal/domain"
	"bacalah/internal/domain/models"
	"bacalah/internal/repositories"
	"bacalah/internal/utils"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// TagService reconciles a document's tag associations against a desired
// set of names, creating vocabulary entries on demand. Reconcile must
// run inside the same transaction as the document write it accompanies,
// and callers must not overlap reconciliations for one document.
type TagService struct {
	DB        *sql.DB
	TagRepo   repositories.TagRepository
	RequestID string
}

func (s TagService) tagRepo() repositories.TagRepository {
	if s.TagRepo.DB != nil {
		return s.TagRepo
	}
	return repositories.TagRepository{DB: s.db()}
}

func (s TagService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Reconcile replaces every association of the document with one per
// resolved tag. Clear-then-insert: nothing from the prior state
// survives, so repeated calls with the same input are idempotent.
func (s TagService) Reconcile(ctx context.Context, tx *sql.Tx, documentID int64, desiredTagNames []string) error {
	now := time.Now().UTC()
	repo := s.tagRepo()

	resolved := []int64{}
	byCanonical := map[string]bool{}

	for _, raw := range utils.DedupeFirstSeen(desiredTagNames) {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		canon := utils.Canonical(name)
		if byCanonical[canon] {
			// same vocabulary entry as an earlier name in this pass
			continue
		}

		tag, err := s.resolveTag(ctx, tx, repo, name, now)
		if err != nil {
			return err
		}

		byCanonical[canon] = true
		resolved = append(resolved, tag.ID)
	}

	if err := repo.ClearAssociations(ctx, tx, documentID); err != nil {
		return err
	}
	for _, tagID := range resolved {
		if err := repo.InsertAssociation(ctx, tx, documentID, tagID, now); err != nil {
			return err
		}
	}
	return nil
}

// resolveTag finds an existing tag by canonical name or creates one with
// the trimmed display form. A duplicate-key error means another writer
// created the same canonical name first; the winner's row is reused.
func (s TagService) resolveTag(ctx context.Context, tx *sql.Tx, repo repositories.TagRepository, name string, now time.Time) (models.Tag, error) {
	tag, err := repo.FindByCanonicalName(ctx, tx, name)
	if err == nil {
		return tag, nil
	}
	if !domain.IsNotFound(err) {
		return models.Tag{}, err
	}

	id, insErr := repo.Insert(ctx, tx, name, now)
	if insErr == nil {
		return models.Tag{ID: id, Name: name, CreatedAt: now}, nil
	}
	if isDuplicateEntry(insErr) {
		tag, err = repo.FindByCanonicalName(ctx, tx, name)
		if err != nil {
			return models.Tag{}, domain.ConflictError{Resource: "tag", Msg: name, Err: err}
		}
		return tag, nil
	}
	return models.Tag{}, domain.StorageError{Op: "insert tag", Err: insErr}
}

// List returns the vocabulary with usage counts.
func (s TagService) List(ctx context.Context) ([]models.TagSummary, error) {
	return s.tagRepo().ListWithCounts(ctx)
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
