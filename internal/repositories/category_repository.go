package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "bacalah/internal/config"
	intdb "bacalah/internal/db"
	"bacalah/internal/domain"
	"bacalah/internal/domain/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CategoryRepository) runner(tx *sql.Tx) intdb.Runner {
	if tx != nil {
		return tx
	}
	return r.db()
}

// Exists checks the category reference before a document write.
func (r CategoryRepository) Exists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var one int
	err := r.runner(tx).QueryRowContext(ctx,
		`SELECT 1 FROM categories WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.StorageError{Op: "check category", Err: err}
	}
	return true, nil
}

func (r CategoryRepository) GetByID(ctx context.Context, id int64) (models.Category, error) {
	var cat models.Category
	err := r.db().QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = ?`, id).Scan(&cat.ID, &cat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, domain.NotFoundError{Resource: "category", Err: err}
	}
	if err != nil {
		return models.Category{}, domain.StorageError{Op: "get category", Err: err}
	}
	return cat, nil
}

func (r CategoryRepository) List(ctx context.Context) ([]models.CategorySummary, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(d.id)
		FROM categories c
		LEFT JOIN documents d ON d.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name ASC, c.id ASC`)
	if err != nil {
		return nil, domain.StorageError{Op: "list categories", Err: err}
	}
	defer rows.Close()

	out := []models.CategorySummary{}
	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.ID, &c.Name, &c.DocumentCount); err != nil {
			return nil, domain.StorageError{Op: "scan category", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "iterate categories", Err: err}
	}
	return out, nil
}

// Insert creates a category. The unique key on name reports duplicates.
func (r CategoryRepository) Insert(ctx context.Context, name string) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StorageError{Op: "insert category", Err: err}
	}
	return id, nil
}
