package store

import (
	"context"
	"database/sql"

	"github.com/roach88/lawbook/internal/errors"
)

// FindByName returns the law whose name matches name case-insensitively.
// A missing law is reported as found == false with a nil error; err is set
// only when the catalog could not be read.
func (s *Store) FindByName(ctx context.Context, name string) (law Law, found bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+lawColumns+`
		FROM maths
		WHERE name_key = ?
	`, NormalizeName(name))

	law, err = scanLaw(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Law{}, false, nil
	}
	if err != nil {
		return Law{}, false, storageError(err, "find law %q", name)
	}
	return law, true, nil
}

// ListNames returns every stored name in storage (insertion) order.
// Returns an empty slice (not nil) for an empty catalog.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM maths ORDER BY rowid ASC`)
	if err != nil {
		return nil, storageError(err, "query names")
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageError(err, "scan name")
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err, "iterate names")
	}

	return names, nil
}

// ListLaws returns every stored law in storage (insertion) order.
// Returns an empty slice (not nil) for an empty catalog.
func (s *Store) ListLaws(ctx context.Context) ([]Law, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+lawColumns+`
		FROM maths
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, storageError(err, "query laws")
	}
	defer rows.Close()

	laws := []Law{}
	for rows.Next() {
		law, err := scanLaw(rows)
		if err != nil {
			return nil, storageError(err, "scan law")
		}
		laws = append(laws, law)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err, "iterate laws")
	}

	return laws, nil
}
