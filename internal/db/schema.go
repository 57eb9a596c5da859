package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL. The unique key on tags.name is the backstop for the
// case-insensitive vocabulary: utf8mb4_0900_ai_ci collation makes the
// index itself case-insensitive, so a lost get-or-create race surfaces
// as a duplicate-key error instead of a second row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,

	`CREATE TABLE IF NOT EXISTS documents (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content MEDIUMTEXT NOT NULL,
		user_id BIGINT NOT NULL,
		category_id BIGINT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_documents_updated_at (updated_at),
		KEY idx_documents_category (category_id),
		CONSTRAINT fk_documents_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_documents_category FOREIGN KEY (category_id) REFERENCES categories(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,

	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_tags_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,

	`CREATE TABLE IF NOT EXISTS document_tags (
		document_id BIGINT NOT NULL,
		tag_id BIGINT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (document_id, tag_id),
		CONSTRAINT fk_doctags_document FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE,
		CONSTRAINT fk_doctags_tag FOREIGN KEY (tag_id) REFERENCES tags(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,
}

// EnsureSchema creates missing tables. Meant for dev setups started with
// DB_AUTO_MIGRATE=1; production schema is managed outside the service.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
