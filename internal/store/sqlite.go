package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fund-reporter/internal/models"
)

// SQLiteStore implements HistoryStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed history store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS export_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		tickers TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_export_runs_timestamp ON export_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_export_runs_kind ON export_runs(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun inserts one completed export into the history.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *models.ExportRun) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO export_runs (timestamp, kind, path, tickers) VALUES (?, ?, ?, ?)`,
		run.Timestamp, run.Kind, run.Path, strings.Join(run.Tickers, ","),
	)
	if err != nil {
		return fmt.Errorf("recording export run: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// GetRuns returns the history, most recent first.
func (s *SQLiteStore) GetRuns(ctx context.Context, filter RunFilter) ([]models.ExportRun, error) {
	query := `SELECT id, timestamp, kind, path, tickers FROM export_runs WHERE 1=1`
	var args []interface{}

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	if !filter.Since.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, filter.Since)
	}
	query += ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying export runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ExportRun
	for rows.Next() {
		var run models.ExportRun
		var tickers string
		if err := rows.Scan(&run.ID, &run.Timestamp, &run.Kind, &run.Path, &tickers); err != nil {
			return nil, fmt.Errorf("scanning export run: %w", err)
		}
		if tickers != "" {
			run.Tickers = strings.Split(tickers, ",")
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
