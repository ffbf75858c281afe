// Package store provides persistence for the export run history.
package store

import (
	"context"
	"time"

	"fund-reporter/internal/models"
)

// HistoryStore records completed exports and answers history queries.
type HistoryStore interface {
	RecordRun(ctx context.Context, run *models.ExportRun) error
	GetRuns(ctx context.Context, filter RunFilter) ([]models.ExportRun, error)
	Close() error
}

// RunFilter narrows a history query. Zero values mean "no constraint".
type RunFilter struct {
	Kind  string
	Since time.Time
	Limit int
}
