// Package sqlitestore provides a SQLite-backed trackswipe.Store.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/trackswipe"
	"github.com/phanxgames/trackswipe/sqlitestore/migrations"
	_ "modernc.org/sqlite"
)

// Store persists tracks and their review states in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ trackswipe.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite track store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// FetchTracks returns every track in playlist order. A NULL review_state is
// returned as a nil value, which normalizes to trackswipe.ReviewUnset.
func (s *Store) FetchTracks(ctx context.Context) ([]trackswipe.RawTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, media_url, review_state FROM tracks ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var out []trackswipe.RawTrack
	for rows.Next() {
		var (
			id, title, mediaURL string
			state               sql.NullString
		)
		if err := rows.Scan(&id, &title, &mediaURL, &state); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		rec := trackswipe.RawTrack{
			"id":           id,
			"title":        title,
			"media_url":    mediaURL,
			"review_state": nil,
		}
		if state.Valid {
			rec["review_state"] = state.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return out, nil
}

// SetReviewState records a verdict. ReviewUnset clears it. Unknown ids
// return trackswipe.ErrTrackNotFound.
func (s *Store) SetReviewState(ctx context.Context, id string, state trackswipe.ReviewState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE tracks SET review_state = ?, updated_at = ? WHERE id = ?`,
		stateValue(state), toMillis(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("update review state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review state: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", trackswipe.ErrTrackNotFound, id)
	}
	return nil
}

// ResetReviews clears the verdict of every track.
func (s *Store) ResetReviews(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`UPDATE tracks SET review_state = NULL, updated_at = ? WHERE review_state IS NOT NULL`,
		toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("reset reviews: %w", err)
	}
	return nil
}

// Upsert inserts tracks or updates existing ones with the same id, in one
// transaction. New tracks are appended after the current last position;
// updated tracks keep theirs. An unset state leaves a stored verdict alone.
func (s *Store) Upsert(ctx context.Context, tracks ...trackswipe.Track) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	for _, t := range tracks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: id is required", trackswipe.ErrInvalidTrack)
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM tracks`).Scan(&next); err != nil {
		return fmt.Errorf("read next position: %w", err)
	}
	now := toMillis(time.Now())
	for _, t := range tracks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tracks (id, position, title, media_url, review_state, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   title = excluded.title,
			   media_url = excluded.media_url,
			   review_state = COALESCE(excluded.review_state, tracks.review_state),
			   updated_at = excluded.updated_at`,
			strings.TrimSpace(t.ID), next, t.Title, t.MediaURL, stateValue(t.State), now, now,
		)
		if err != nil {
			return fmt.Errorf("upsert track %s: %w", t.ID, err)
		}
		next++
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// Delete removes a track. Unknown ids return trackswipe.ErrTrackNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", trackswipe.ErrTrackNotFound, id)
	}
	return nil
}

func stateValue(state trackswipe.ReviewState) any {
	if state == trackswipe.ReviewUnset {
		return nil
	}
	return state.String()
}
