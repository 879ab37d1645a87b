package unprotect

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify a failure.
var (
	// ErrInvalidInput indicates a missing file or unsupported extension.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackup indicates the backup copy could not be written.
	ErrBackup = errors.New("backup failed")
	// ErrArchiveFormat indicates the input is not a valid package.
	ErrArchiveFormat = errors.New("invalid package format")
	// ErrIO indicates a filesystem failure while extracting, mutating or repacking.
	ErrIO = errors.New("i/o failure")
	// ErrIntegrity indicates the repacked output failed its checksum check. It is
	// reported as a warning and never rolls back the output.
	ErrIntegrity = errors.New("integrity check failed")
)

// Error is a classified failure tied to the file or part being processed.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
