// Package errors provides custom error types for schedule extraction.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTickerNotFound = errors.New("ticker not found in document")
	ErrHeaderNotFound = errors.New("schedule header not found")
	ErrFooterNotFound = errors.New("schedule footer not found")
	ErrUnknownFormat  = errors.New("unknown document format")
	ErrNoSchedule     = errors.New("no schedule records extracted")
	ErrIssuerUnknown  = errors.New("issuer not registered")
	ErrConfigInvalid  = errors.New("invalid configuration")
	ErrDownloadFailed = errors.New("document download failed")
)

// FormatError reports a token that matches no known date dialect.
// Callers treat it as "this is not a date", not as a failure: the
// surrounding line is skipped and extraction continues.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Token)
}

// NewFormatError creates a new FormatError.
func NewFormatError(token string) *FormatError {
	return &FormatError{Token: token}
}

// BlockMismatchError reports label-block sections whose recognized date
// counts disagree. There is no recovery: the security's extraction aborts
// and no partial schedule is emitted.
type BlockMismatchError struct {
	Declarations int
	ExRecord     int
	Pay          int
}

func (e *BlockMismatchError) Error() string {
	return fmt.Sprintf("mismatched block counts: %d declaration, %d ex/record, %d pay dates",
		e.Declarations, e.ExRecord, e.Pay)
}

// NewBlockMismatchError creates a new BlockMismatchError.
func NewBlockMismatchError(declarations, exRecord, pay int) *BlockMismatchError {
	return &BlockMismatchError{
		Declarations: declarations,
		ExRecord:     exRecord,
		Pay:          pay,
	}
}

// ExtractError carries per-ticker context for a failed extraction up to
// the caller. One ticker's ExtractError never disturbs other tickers in
// the same run.
type ExtractError struct {
	Ticker string
	Issuer string
	Stage  string
	Err    error
}

func (e *ExtractError) Error() string {
	if e.Issuer != "" {
		return fmt.Sprintf("extract %s [%s] %s: %v", e.Ticker, e.Issuer, e.Stage, e.Err)
	}
	return fmt.Sprintf("extract %s %s: %v", e.Ticker, e.Stage, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewExtractError creates a new ExtractError.
func NewExtractError(ticker, issuer, stage string, err error) *ExtractError {
	return &ExtractError{
		Ticker: ticker,
		Issuer: issuer,
		Stage:  stage,
		Err:    err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
