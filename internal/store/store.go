package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subsight/internal/config"
	"subsight/internal/ocr"
	"subsight/internal/syncreport"
)

// Run is one persisted classification result.
type Run struct {
	ID                string
	CreatedAt         time.Time
	Mode              string
	Source            string
	Status            string
	RawDetections     int
	IncludedSubtitles int
	Counts            ocr.Counts
	SyncOverall       string
	SyncReport        *syncreport.Report
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the run database, acquires the writer
// lock, and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire database lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another subsight process holds the database lock")
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection and releases the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// SaveRun records a classification result and returns the stored run.
func (s *Store) SaveRun(ctx context.Context, source string, result ocr.Result) (*Run, error) {
	run := &Run{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		Mode:              result.Mode,
		Source:            source,
		Status:            result.Status,
		RawDetections:     result.Counts.Raw,
		IncludedSubtitles: result.Counts.FilteredSubtitles,
		Counts:            result.Counts,
		SyncReport:        result.SyncReport,
	}
	if result.SyncReport != nil {
		run.SyncOverall = string(result.SyncReport.Summary.OverallSyncStatus)
	}

	countsJSON, err := json.Marshal(result.Counts)
	if err != nil {
		return nil, fmt.Errorf("marshal counts: %w", err)
	}
	var syncJSON sql.NullString
	if result.SyncReport != nil {
		data, err := json.Marshal(result.SyncReport)
		if err != nil {
			return nil, fmt.Errorf("marshal sync report: %w", err)
		}
		syncJSON = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, created_at, mode, source, status,
            raw_detections, included_subtitles, counts_json, sync_overall, sync_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Mode,
		run.Source,
		run.Status,
		run.RawDetections,
		run.IncludedSubtitles,
		string(countsJSON),
		nullableString(run.SyncOverall),
		syncJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for _, row := range result.AuditRows {
		rowJSON, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("marshal audit row %d: %w", row.Order, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO audit_rows (run_id, display_order, detection_id, row_json) VALUES (?, ?, ?, ?)`,
			run.ID,
			row.Order,
			row.DetectionID,
			string(rowJSON),
		); err != nil {
			return nil, fmt.Errorf("insert audit row %d: %w", row.Order, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return run, nil
}

const runColumns = `id, created_at, mode, source, status,
    raw_detections, included_subtitles, counts_json, sync_overall, sync_json`

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches a run by identifier. A missing run returns nil without
// an error.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetAuditRows returns the stored audit rows for a run in display order.
func (s *Store) GetAuditRows(ctx context.Context, runID string) ([]ocr.AuditRow, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT row_json FROM audit_rows WHERE run_id = ? ORDER BY display_order`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit rows: %w", err)
	}
	defer rows.Close()

	var result []ocr.AuditRow
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		var auditRow ocr.AuditRow
		if err := json.Unmarshal([]byte(raw), &auditRow); err != nil {
			return nil, fmt.Errorf("decode audit row: %w", err)
		}
		result = append(result, auditRow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}
	return result, nil
}

// DeleteRun removes a run and its audit rows, reporting whether anything
// was deleted.
func (s *Store) DeleteRun(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(scanner rowScanner) (*Run, error) {
	var (
		run         Run
		createdAt   string
		countsJSON  string
		syncOverall sql.NullString
		syncJSON    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&createdAt,
		&run.Mode,
		&run.Source,
		&run.Status,
		&run.RawDetections,
		&run.IncludedSubtitles,
		&countsJSON,
		&syncOverall,
		&syncJSON,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = parsed

	if err := json.Unmarshal([]byte(countsJSON), &run.Counts); err != nil {
		return nil, fmt.Errorf("decode counts: %w", err)
	}
	if syncOverall.Valid {
		run.SyncOverall = syncOverall.String
	}
	if syncJSON.Valid {
		var report syncreport.Report
		if err := json.Unmarshal([]byte(syncJSON.String), &report); err != nil {
			return nil, fmt.Errorf("decode sync report: %w", err)
		}
		run.SyncReport = &report
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
