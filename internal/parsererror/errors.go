// Package parsererror defines the typed errors returned by the import pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrUnsupportedFormat = errors.New("unsupported statement format")
	ErrEmptyResult       = errors.New("no usable transactions")
	ErrStructuralParse   = errors.New("structural parse failure")
	ErrValidation        = errors.New("validation failed")
)

// UnsupportedFormatError is returned when a file name matches neither the
// delimited-text nor the markup parser.
type UnsupportedFormatError struct {
	FileName  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported format for '%s': file has no extension (expected .csv, .ofx or .xml)", e.FileName)
	}
	return fmt.Sprintf("unsupported format for '%s': extension %s (expected .csv, .ofx or .xml)", e.FileName, e.Extension)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// EmptyResultError is returned when parsing succeeded but produced no
// transaction. Skipped counts the rows that were dropped on the way.
type EmptyResultError struct {
	FileName string
	Parser   string
	Skipped  int
}

func (e *EmptyResultError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("%s: no usable transactions found in '%s' (%d rows skipped)", e.Parser, e.FileName, e.Skipped)
	}
	return fmt.Sprintf("%s: no usable transactions found in '%s'", e.Parser, e.FileName)
}

func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// StructuralParseError reports a document that could not be walked at all.
type StructuralParseError struct {
	Parser string
	Err    error
}

func (e *StructuralParseError) Error() string {
	return fmt.Sprintf("%s: structural parse failure: %v", e.Parser, e.Err)
}

func (e *StructuralParseError) Unwrap() error {
	return e.Err
}

func (e *StructuralParseError) Is(target error) bool {
	return target == ErrStructuralParse
}

// ParseError represents a single value that could not be parsed
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an entity that breaks a model invariant
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
