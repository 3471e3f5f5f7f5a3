package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/roach88/lawbook/internal/errors"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial maths table with name_key uniqueness
const currentSchemaVersion = 1

// catalogColumns must all be present in an existing maths table before the
// file is accepted as a catalog.
var catalogColumns = []string{"id", "name", "name_key", "formula", "section"}

// Store is the law catalog backed by a single SQLite file.
// It is the single source of truth for Law records.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
	ids IDGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithIDGenerator overrides the surrogate id generator (for testing).
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// Open creates or opens the catalog database at path.
// The parent directory is created if absent, then pragmas and the schema
// are applied.
//
// The database is configured with:
//   - WAL mode
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call on every process start.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageError(err, "create data directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storageError(err, "open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageError(err, "connect to database %s", path)
	}

	// SQLite has one writer; a single pooled connection means every operation
	// checks it out for its duration and hands it back on return.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, storageError(err, "apply pragmas")
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, storageError(err, "apply schema")
	}

	s := newStore(db, opts...)
	s.log.Debugw("Catalog opened", "path", path, "schema_version", currentSchemaVersion)
	return s, nil
}

// newStore wraps an already-initialized database handle.
func newStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		log: zap.NewNop().Sugar(),
		ids: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Wrapf(err, "execute %q", pragma)
		}
	}

	return nil
}

// applySchema creates the maths table if it doesn't exist and stamps the
// schema version. A maths table left by another program (no name_key) or a
// file stamped by a newer lawbook is rejected and left untouched.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(err, "get user_version")
	}
	if version > currentSchemaVersion {
		return errors.Newf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "execute schema")
	}

	if err := checkColumns(db); err != nil {
		return err
	}

	if version == currentSchemaVersion {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return errors.Wrap(err, "set user_version")
	}

	return nil
}

// checkColumns verifies that the maths table has every catalog column.
func checkColumns(db *sql.DB) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info('maths')")
	if err != nil {
		return errors.Wrap(err, "inspect maths table")
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, "scan maths column")
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "inspect maths table")
	}

	var missing []string
	for _, col := range catalogColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.WithHint(
			errors.Newf("maths table is not a lawbook catalog (missing columns: %s)", strings.Join(missing, ", ")),
			"point --db at a new file or move the existing database aside",
		)
	}
	return nil
}

// schemaVersion reads PRAGMA user_version.
func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, storageError(err, "get user_version")
	}
	return version, nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return errors.Wrapf(err, "query %s", name)
	}
	if value != expected {
		return errors.Newf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
