// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoDecisions      = errors.New("no trading decisions available")
	ErrEmptyResult      = errors.New("empty report result")
	ErrInvalidResult    = errors.New("invalid report result")
	ErrInvalidInput     = errors.New("invalid input document")
	ErrInvalidPath      = errors.New("invalid output path")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrPriceUnavailable = errors.New("price data unavailable")
)

// ExportError represents a failure while writing a report artifact.
// It carries the destination path and, when known, the sheet being
// built at the time of failure.
type ExportError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *ExportError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("export to %s failed on sheet %q: %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(path, sheet string, err error) *ExportError {
	return &ExportError{
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}

// PriceError represents an error from the price-history upstream.
type PriceError struct {
	Ticker     string
	StatusCode int
	Err        error
}

func (e *PriceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("price lookup for %s failed with status %d: %v", e.Ticker, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("price lookup for %s failed: %v", e.Ticker, e.Err)
}

func (e *PriceError) Unwrap() error {
	return e.Err
}

// NewPriceError creates a new PriceError.
func NewPriceError(ticker string, status int, err error) *PriceError {
	return &PriceError{
		Ticker:     ticker,
		StatusCode: status,
		Err:        err,
	}
}

// IsExportError checks if an error is an ExportError.
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}
