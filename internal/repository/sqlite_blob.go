package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/db"
)

// SQLiteBlobRepo implements ProgressBlobRepo using a SQLite database.
type SQLiteBlobRepo struct {
	db db.DBTX
}

// NewSQLiteBlobRepo creates a new SQLiteBlobRepo.
func NewSQLiteBlobRepo(conn db.DBTX) *SQLiteBlobRepo {
	return &SQLiteBlobRepo{db: conn}
}

func (r *SQLiteBlobRepo) Get(ctx context.Context, key string) (*ProgressBlob, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, blob, revision, updated_at FROM progress_blobs WHERE key = ?`, key)

	var (
		b         ProgressBlob
		blob      string
		updatedAt string
	)
	if err := row.Scan(&b.Key, &blob, &b.Revision, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress blob %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning progress blob: %w", err)
	}
	b.Blob = []byte(blob)
	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at of %q: %w", key, err)
	}
	b.UpdatedAt = t
	return &b, nil
}

func (r *SQLiteBlobRepo) Upsert(ctx context.Context, key string, blob []byte, at time.Time) (int, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_blobs (key, blob, revision, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			blob = excluded.blob,
			revision = progress_blobs.revision + 1,
			updated_at = excluded.updated_at`,
		key, string(blob), formatTime(at))
	if err != nil {
		return 0, fmt.Errorf("upserting progress blob: %w", err)
	}

	var rev int
	if err := r.db.QueryRowContext(ctx, `SELECT revision FROM progress_blobs WHERE key = ?`, key).Scan(&rev); err != nil {
		return 0, fmt.Errorf("reading progress blob revision: %w", err)
	}
	return rev, nil
}
