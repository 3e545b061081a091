package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/google/uuid"
)

// SQLiteEventRepo implements ProgressEventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// Append inserts e, assigning a new ID when e.ID is empty.
func (r *SQLiteEventRepo) Append(ctx context.Context, e *domain.ProgressEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Source == "" {
		e.Source = DefaultSource
	}
	var confidence sql.NullString
	if e.Confidence != "" {
		confidence = sql.NullString{String: string(e.Confidence), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_events (id, user_key, date, action, confidence, source, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserKey, e.Date.String(), string(e.Action), confidence, e.Source, formatTime(e.At))
	if err != nil {
		return fmt.Errorf("inserting progress event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) ListByUser(ctx context.Context, userKey string, limit int) ([]*domain.ProgressEvent, error) {
	query := `SELECT id, user_key, date, action, confidence, source, at
		FROM progress_events WHERE user_key = ?
		ORDER BY at DESC, rowid DESC`
	args := []any{userKey}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing progress events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ProgressEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (*domain.ProgressEvent, error) {
	var (
		e          domain.ProgressEvent
		date       string
		action     string
		confidence sql.NullString
		at         string
	)
	if err := rows.Scan(&e.ID, &e.UserKey, &date, &action, &confidence, &e.Source, &at); err != nil {
		return nil, fmt.Errorf("scanning progress event: %w", err)
	}
	d, err := domain.ParseDateKey(date)
	if err != nil {
		return nil, fmt.Errorf("progress event %s: %w", e.ID, err)
	}
	e.Date = d
	e.Action = domain.EventAction(action)
	if confidence.Valid {
		e.Confidence = domain.Confidence(confidence.String)
	}
	if e.At, err = parseTime(at); err != nil {
		return nil, fmt.Errorf("progress event %s: parsing at: %w", e.ID, err)
	}
	return &e, nil
}
