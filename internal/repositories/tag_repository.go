package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "bacalah/internal/config"
	intdb "bacalah/internal/db"
	"bacalah/internal/domain"
	"bacalah/internal/domain/models"
)

type TagRepository struct {
	DB *sql.DB
}

func (r TagRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TagRepository) runner(tx *sql.Tx) intdb.Runner {
	if tx != nil {
		return tx
	}
	return r.db()
}

// FindByCanonicalName looks a tag up by its case-folded name.
// Returns domain.NotFoundError when the vocabulary has no match.
func (r TagRepository) FindByCanonicalName(ctx context.Context, tx *sql.Tx, name string) (models.Tag, error) {
	var t models.Tag
	err := r.runner(tx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM tags WHERE LOWER(name) = LOWER(?) LIMIT 1`,
		strings.TrimSpace(name)).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, domain.NotFoundError{Resource: "tag", Err: err}
	}
	if err != nil {
		return models.Tag{}, domain.StorageError{Op: "find tag", Err: err}
	}
	return t, nil
}

// Insert creates a vocabulary entry storing the trimmed display form.
// A duplicate-key error passes through untranslated so the caller can
// detect a lost get-or-create race.
func (r TagRepository) Insert(ctx context.Context, tx *sql.Tx, name string, now time.Time) (int64, error) {
	res, err := r.runner(tx).ExecContext(ctx,
		`INSERT INTO tags (name, created_at) VALUES (?, ?)`,
		strings.TrimSpace(name), now)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StorageError{Op: "insert tag", Err: err}
	}
	return id, nil
}

// ClearAssociations removes every tag link of one document.
func (r TagRepository) ClearAssociations(ctx context.Context, tx *sql.Tx, documentID int64) error {
	if _, err := r.runner(tx).ExecContext(ctx,
		`DELETE FROM document_tags WHERE document_id = ?`, documentID); err != nil {
		return domain.StorageError{Op: "clear document tags", Err: err}
	}
	return nil
}

func (r TagRepository) InsertAssociation(ctx context.Context, tx *sql.Tx, documentID, tagID int64, now time.Time) error {
	if _, err := r.runner(tx).ExecContext(ctx,
		`INSERT INTO document_tags (document_id, tag_id, created_at) VALUES (?, ?, ?)`,
		documentID, tagID, now); err != nil {
		return domain.StorageError{Op: "insert document tag", Err: err}
	}
	return nil
}

// NamesByDocumentIDs fetches tag names for a batch of documents in one
// query, ordered by tag id so the sequence is stable.
func (r TagRepository) NamesByDocumentIDs(ctx context.Context, documentIDs []int64) (map[int64][]string, error) {
	out := map[int64][]string{}
	if len(documentIDs) == 0 {
		return out, nil
	}

	ph := make([]string, len(documentIDs))
	args := make([]any, len(documentIDs))
	for i, id := range documentIDs {
		ph[i] = "?"
		args[i] = id
	}

	rows, err := r.db().QueryContext(ctx, `
		SELECT dt.document_id, t.name
		FROM document_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.document_id IN (`+strings.Join(ph, ",")+`)
		ORDER BY dt.document_id ASC, t.id ASC`, args...)
	if err != nil {
		return nil, domain.StorageError{Op: "list document tags", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var docID int64
		var name string
		if err := rows.Scan(&docID, &name); err != nil {
			return nil, domain.StorageError{Op: "scan document tag", Err: err}
		}
		out[docID] = append(out[docID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "iterate document tags", Err: err}
	}
	return out, nil
}

// ListWithCounts returns the vocabulary with per-tag document counts.
func (r TagRepository) ListWithCounts(ctx context.Context) ([]models.TagSummary, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT t.id, t.name, COUNT(dt.document_id)
		FROM tags t
		LEFT JOIN document_tags dt ON dt.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.name ASC, t.id ASC`)
	if err != nil {
		return nil, domain.StorageError{Op: "list tags", Err: err}
	}
	defer rows.Close()

	out := []models.TagSummary{}
	for rows.Next() {
		var t models.TagSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.DocumentCount); err != nil {
			return nil, domain.StorageError{Op: "scan tag", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "iterate tags", Err: err}
	}
	return out, nil
}
