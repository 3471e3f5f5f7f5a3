package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Add inserts a new law.
// Returns ErrDuplicateName if a stored name matches law.Name
// case-insensitively; nothing is written in that case.
func (s *Store) Add(ctx context.Context, law Law) error {
	key := NormalizeName(law.Name)

	return s.withTx(ctx, "add law", func(tx *sql.Tx) error {
		_, taken, err := lookupTx(ctx, tx, key)
		if err != nil {
			return err
		}
		if taken {
			return duplicate(law.Name)
		}

		id := s.ids.Generate()
		if err := insertTx(ctx, tx, id, key, law); err != nil {
			return err
		}
		s.log.Debugw("Law added", "name", law.Name, "id", id, "section", law.Section)
		return nil
	})
}

func insertTx(ctx context.Context, tx *sql.Tx, id, key string, law Law) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO maths (id, name, name_key, formula, section)
		VALUES (?, ?, ?, ?, ?)
	`,
		id,
		law.Name,
		key,
		law.Formula,
		law.Section,
	)
	if err != nil {
		return writeError(err, law.Name, "insert law")
	}
	return nil
}

// UpdateFormula replaces the formula of the law matching name.
// Name and section are left untouched. Returns ErrNotFound, without
// writing, if no law matches.
func (s *Store) UpdateFormula(ctx context.Context, name, formula string) error {
	return s.updateField(ctx, name, "formula", formula)
}

// UpdateSection replaces the section of the law matching name.
// Name and formula are left untouched. Returns ErrNotFound, without
// writing, if no law matches.
func (s *Store) UpdateSection(ctx context.Context, name, section string) error {
	return s.updateField(ctx, name, "section", section)
}

// updateField sets one free-form column. column is always a literal from
// this file, never caller input.
func (s *Store) updateField(ctx context.Context, name, column, value string) error {
	op := "update " + column
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		id, found, err := lookupTx(ctx, tx, NormalizeName(name))
		if err != nil {
			return err
		}
		if !found {
			return notFound(name)
		}

		query := fmt.Sprintf(`UPDATE maths SET %s = ? WHERE id = ?`, column)
		if _, err := tx.ExecContext(ctx, query, value, id); err != nil {
			return storageError(err, "%s", op)
		}
		s.log.Debugw("Law updated", "name", name, "field", column)
		return nil
	})
}

// Rename changes the stored name of the law matching oldName.
//
// Returns ErrNotFound if oldName matches nothing, or ErrDuplicateName if a
// different law already matches newName. Renaming a law to a casing
// variant of its own name is allowed and only changes the stored casing.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	oldKey, newKey := NormalizeName(oldName), NormalizeName(newName)

	return s.withTx(ctx, "rename law", func(tx *sql.Tx) error {
		id, found, err := lookupTx(ctx, tx, oldKey)
		if err != nil {
			return err
		}
		if !found {
			return notFound(oldName)
		}

		if newKey != oldKey {
			otherID, taken, err := lookupTx(ctx, tx, newKey)
			if err != nil {
				return err
			}
			if taken && otherID != id {
				return duplicate(newName)
			}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE maths SET name = ?, name_key = ? WHERE id = ?
		`, newName, newKey, id)
		if err != nil {
			return writeError(err, newName, "rename law")
		}
		s.log.Debugw("Law renamed", "from", oldName, "to", newName)
		return nil
	})
}

// Delete permanently removes the law matching name.
// Returns ErrNotFound, without writing, if no law matches.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.withTx(ctx, "delete law", func(tx *sql.Tx) error {
		id, found, err := lookupTx(ctx, tx, NormalizeName(name))
		if err != nil {
			return err
		}
		if !found {
			return notFound(name)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM maths WHERE id = ?`, id); err != nil {
			return storageError(err, "delete law")
		}
		s.log.Debugw("Law deleted", "name", name)
		return nil
	})
}

// ImportOptions controls Import.
type ImportOptions struct {
	// SkipExisting counts names that collide with the catalog (or with an
	// earlier entry of the same batch) as skipped instead of failing.
	SkipExisting bool
}

// ImportResult summarizes an Import.
type ImportResult struct {
	Added   int
	Skipped []string
}

// Import adds laws in a single transaction.
//
// Without SkipExisting the first collision aborts the batch with
// ErrDuplicateName and nothing is written.
func (s *Store) Import(ctx context.Context, laws []Law, opts ImportOptions) (ImportResult, error) {
	var result ImportResult

	err := s.withTx(ctx, "import laws", func(tx *sql.Tx) error {
		for _, law := range laws {
			key := NormalizeName(law.Name)

			_, taken, err := lookupTx(ctx, tx, key)
			if err != nil {
				return err
			}
			if taken {
				if !opts.SkipExisting {
					return duplicate(law.Name)
				}
				result.Skipped = append(result.Skipped, law.Name)
				continue
			}

			if err := insertTx(ctx, tx, s.ids.Generate(), key, law); err != nil {
				return err
			}
			result.Added++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	s.log.Infow("Laws imported", "added", result.Added, "skipped", len(result.Skipped))
	return result, nil
}
