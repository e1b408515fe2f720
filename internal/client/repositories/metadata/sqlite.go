package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tutorit/internal/common"
	"github.com/dmitrijs2005/tutorit/internal/dbx"
)

// SQLiteRepository implements Repository over the metadata table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE name = ?`, name)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("query row scan failed: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, name, value string) error {
	query := `INSERT INTO metadata (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("failed to set metadata %q: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete metadata %q: %w", name, err)
	}
	return nil
}
