// Package errors provides error handling for lawbook.
//
// This package re-exports github.com/cockroachdb/errors so that every package
// wraps, marks and inspects errors the same way:
//
//	if err := tx.Commit(); err != nil {
//	    return errors.Wrap(err, "commit")
//	}
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle missing row
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection and marking
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Mark      = crdb.Mark
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Common sentinel errors shared across packages.
// Package-level sentinels elsewhere are marked with these so that
// errors.Is works against either one.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("not found")

	// ErrConflict indicates a write would violate a uniqueness rule
	ErrConflict = New("resource conflict")

	// ErrInvalidRequest indicates malformed caller input
	ErrInvalidRequest = New("invalid request")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool {
	return err != nil && Is(err, ErrConflict)
}
