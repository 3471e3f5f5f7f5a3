package store

import (
	"context"
	"database/sql"

	"github.com/roach88/lawbook/internal/errors"
)

// Law is one catalog record.
//
// ID is a surrogate key kept for storage convenience. It is never used to
// address a law; Name is the natural identifier.
type Law struct {
	ID      string `json:"-" yaml:"-"`
	Name    string `json:"name" yaml:"name"`
	Formula string `json:"formula" yaml:"formula"`
	Section string `json:"section" yaml:"section"`
}

const lawColumns = "id, name, formula, section"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLaw(row scanner) (Law, error) {
	var law Law
	err := row.Scan(&law.ID, &law.Name, &law.Formula, &law.Section)
	return law, err
}

// lookupTx resolves a normalized name to its row id inside tx.
// found is false when no row carries key.
func lookupTx(ctx context.Context, tx *sql.Tx, key string) (id string, found bool, err error) {
	err = tx.QueryRowContext(ctx, `SELECT id FROM maths WHERE name_key = ?`, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageError(err, "look up name key %q", key)
	}
	return id, true, nil
}

// withTx runs fn in a transaction. fn's error is returned unchanged and
// the transaction is rolled back; otherwise it is committed.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(err, "%s: begin tx", op)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "%s: commit", op)
	}
	return nil
}
