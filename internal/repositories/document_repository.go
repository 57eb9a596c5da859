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
	"bacalah/internal/utils"
)

type DocumentRepository struct {
	DB *sql.DB
}

// DocumentRow is one document joined with its owner and category.
// Content is the full text; callers decide whether to truncate.
type DocumentRow struct {
	ID           int64
	Title        string
	Content      string
	UserID       int64
	CategoryID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	Email        string
	CategoryName string
}

func (r DocumentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DocumentRepository) runner(tx *sql.Tx) intdb.Runner {
	if tx != nil {
		return tx
	}
	return r.db()
}

const documentSelect = `
	SELECT d.id, d.title, d.content, d.user_id, d.category_id, d.created_at, d.updated_at,
	       COALESCE(u.username,''), u.email, COALESCE(c.name,'')
	FROM documents d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN categories c ON c.id = d.category_id`

// buildSearchWhere composes the conjunctive filter clauses in fixed
// order: free text, category, tags. Each clause is optional; an absent
// criterion contributes nothing rather than matching everything.
func buildSearchWhere(criteria domain.SearchCriteria) ([]string, []any) {
	where := []string{}
	args := []any{}

	if term := utils.Canonical(criteria.Query); term != "" {
		where = append(where, "(LOWER(d.title) LIKE ? OR LOWER(d.content) LIKE ?)")
		like := "%" + escapeLike(term) + "%"
		args = append(args, like, like)
	}

	if criteria.CategoryID != nil {
		if *criteria.CategoryID == 0 {
			// explicit "no category" request
			where = append(where, "d.category_id IS NULL")
		} else {
			where = append(where, "d.category_id = ?")
			args = append(args, *criteria.CategoryID)
		}
	}

	if len(criteria.TagIDs) > 0 {
		ph := make([]string, len(criteria.TagIDs))
		for i, id := range criteria.TagIDs {
			ph[i] = "?"
			args = append(args, id)
		}
		where = append(where, "EXISTS (SELECT 1 FROM document_tags dt WHERE dt.document_id = d.id AND dt.tag_id IN ("+strings.Join(ph, ",")+"))")
	}

	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE metacharacters so user input matches as a
// literal substring instead of a pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// sortClause maps the requested sort key to a whitelisted ORDER BY.
// Unrecognized or absent keys fall back to updated_at descending.
// Every branch carries "d.id ASC" so ties cannot reshuffle pages.
func sortClause(sortBy string, descending bool) string {
	dir := "ASC"
	if descending {
		dir = "DESC"
	}
	switch utils.Canonical(sortBy) {
	case domain.SortByTitle:
		return "d.title " + dir + ", d.id ASC"
	case domain.SortByCreatedAt:
		return "d.created_at " + dir + ", d.id ASC"
	default:
		return "d.updated_at DESC, d.id ASC"
	}
}

// Search runs the filtered, sorted, paginated document query. The total
// is counted over the filtered set before windowing.
func (r DocumentRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]DocumentRow, int, error) {
	where, args := buildSearchWhere(criteria)

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM documents d" + whereSQL
	if err := r.db().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, domain.StorageError{Op: "count documents", Err: err}
	}

	limit := criteria.PageSize
	offset := (criteria.PageNumber - 1) * criteria.PageSize

	query := documentSelect + whereSQL +
		" ORDER BY " + sortClause(criteria.SortBy, criteria.SortDescending) +
		" LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), limit, offset)

	rows, err := r.db().QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, domain.StorageError{Op: "search documents", Err: err}
	}
	defer rows.Close()

	out := []DocumentRow{}
	for rows.Next() {
		row, err := scanDocumentRow(rows)
		if err != nil {
			return nil, 0, domain.StorageError{Op: "scan document", Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.StorageError{Op: "iterate documents", Err: err}
	}
	return out, total, nil
}

func (r DocumentRepository) GetByID(ctx context.Context, id int64) (DocumentRow, error) {
	row := r.db().QueryRowContext(ctx, documentSelect+" WHERE d.id = ?", id)

	var d DocumentRow
	var categoryID sql.NullInt64
	err := row.Scan(&d.ID, &d.Title, &d.Content, &d.UserID, &categoryID,
		&d.CreatedAt, &d.UpdatedAt, &d.Username, &d.Email, &d.CategoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentRow{}, domain.NotFoundError{Resource: "document", Err: err}
	}
	if err != nil {
		return DocumentRow{}, domain.StorageError{Op: "get document", Err: err}
	}
	if categoryID.Valid {
		d.CategoryID = &categoryID.Int64
	}
	return d, nil
}

func (r DocumentRepository) Insert(ctx context.Context, tx *sql.Tx, title, content string, userID int64, categoryID *int64, now time.Time) (int64, error) {
	res, err := r.runner(tx).ExecContext(ctx, `
		INSERT INTO documents (title, content, user_id, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		title, content, userID, nullableID(categoryID), now, now)
	if err != nil {
		return 0, domain.StorageError{Op: "insert document", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StorageError{Op: "insert document", Err: err}
	}
	return id, nil
}

func (r DocumentRepository) Update(ctx context.Context, tx *sql.Tx, id int64, title, content string, categoryID *int64, now time.Time) error {
	res, err := r.runner(tx).ExecContext(ctx, `
		UPDATE documents SET title = ?, content = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		title, content, nullableID(categoryID), now, id)
	if err != nil {
		return domain.StorageError{Op: "update document", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StorageError{Op: "update document", Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "document"}
	}
	return nil
}

func (r DocumentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return domain.StorageError{Op: "delete document", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StorageError{Op: "delete document", Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "document"}
	}
	return nil
}

// Recent returns the newest documents by updated_at without paging.
func (r DocumentRepository) Recent(ctx context.Context, count int) ([]DocumentRow, error) {
	rows, err := r.db().QueryContext(ctx,
		documentSelect+" ORDER BY d.updated_at DESC, d.id ASC LIMIT ?", count)
	if err != nil {
		return nil, domain.StorageError{Op: "recent documents", Err: err}
	}
	defer rows.Close()

	out := []DocumentRow{}
	for rows.Next() {
		row, err := scanDocumentRow(rows)
		if err != nil {
			return nil, domain.StorageError{Op: "scan document", Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "iterate documents", Err: err}
	}
	return out, nil
}

// OwnerID reads just the owning user, used for write authorization.
func (r DocumentRepository) OwnerID(ctx context.Context, id int64) (int64, error) {
	var userID int64
	err := r.db().QueryRowContext(ctx, `SELECT user_id FROM documents WHERE id = ?`, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFoundError{Resource: "document", Err: err}
	}
	if err != nil {
		return 0, domain.StorageError{Op: "get document owner", Err: err}
	}
	return userID, nil
}

func scanDocumentRow(rows *sql.Rows) (DocumentRow, error) {
	var d DocumentRow
	var categoryID sql.NullInt64
	if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.UserID, &categoryID,
		&d.CreatedAt, &d.UpdatedAt, &d.Username, &d.Email, &d.CategoryName); err != nil {
		return DocumentRow{}, err
	}
	if categoryID.Valid {
		d.CategoryID = &categoryID.Int64
	}
	return d, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
