package store

import (
	"github.com/mattn/go-sqlite3"

	"github.com/roach88/lawbook/internal/errors"
)

// Catalog outcomes. Both are expected, recoverable results that callers
// report verbatim; neither is retried.
var (
	// ErrNotFound is returned when no stored name matches case-insensitively.
	ErrNotFound = errors.Mark(errors.New("law not found"), errors.ErrNotFound)

	// ErrDuplicateName is returned when an insert or rename would leave two
	// names that are equal under NormalizeName.
	ErrDuplicateName = errors.Mark(errors.New("law already exists"), errors.ErrConflict)
)

// ErrStorage marks every failure of the backing file or driver. It is never
// reported as ErrNotFound or ErrDuplicateName.
var ErrStorage = errors.New("catalog storage unavailable")

// storageError wraps err with context and marks it as ErrStorage.
func storageError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrStorage)
}

// notFound reports a missing law.
func notFound(name string) error {
	return errors.Wrapf(ErrNotFound, "%q", name)
}

// duplicate reports a name collision.
func duplicate(name string) error {
	return errors.Wrapf(ErrDuplicateName, "%q", name)
}

// writeError classifies a failed write. A UNIQUE violation on name or
// name_key is the same condition the pre-check guards against, so it maps
// to ErrDuplicateName; anything else is a storage failure.
func writeError(err error, name, op string) error {
	if isUniqueViolation(err) {
		return duplicate(name)
	}
	return storageError(err, "%s", op)
}

// isUniqueViolation reports whether err is SQLITE_CONSTRAINT_UNIQUE.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
