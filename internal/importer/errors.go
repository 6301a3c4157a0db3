package importer

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the import pipeline. Row-scoped errors (date, km,
// ordering) are recorded against the offending row and never abort a batch;
// ErrMissingColumns is file-scoped and fatal before any row is processed;
// ErrNoValidRecords is a reportable empty-result condition, not a failure.
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKilometer = errors.New("invalid kilometer value")
	ErrKilometerOrder   = errors.New("next service km must be greater than current km")
	ErrMissingColumns   = errors.New("missing required columns")
	ErrNoValidRecords   = errors.New("no valid records found")
)

// cellError wraps a sentinel with the offending raw value for diagnostics.
func cellError(sentinel error, raw any) error {
	return fmt.Errorf("%w: %v", sentinel, raw)
}

// missingColumnsError lists the logical columns with no matching header.
func missingColumnsError(missing []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
}
