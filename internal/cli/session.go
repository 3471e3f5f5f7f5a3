package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lawbook/internal/catalogfile"
	"github.com/roach88/lawbook/internal/config"
	"github.com/roach88/lawbook/internal/errors"
	"github.com/roach88/lawbook/internal/logger"
	"github.com/roach88/lawbook/internal/store"
)

// session is one command's view of the catalog: the opened store, its
// logger and the output formatter.
type session struct {
	store *store.Store
	log   *zap.SugaredLogger
	out   *OutputFormatter
	ctx   context.Context
}

// newFormatter builds the formatter for cmd from the global flags.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// resolveConfig loads configuration and applies the global flag overrides.
func resolveConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// openSession loads configuration, applies flag overrides and opens the
// catalog. The caller must Close the session.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := newFormatter(opts, cmd)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeGeneric, "failed to load config", err)
	}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		JSON:   cfg.Log.JSON,
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeGeneric, "failed to configure logging", err)
	}

	path := cfg.DatabasePath()
	out.VerboseLog("Opening catalog %s", path)
	st, err := store.Open(path, store.WithLogger(log))
	if err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeStorage, "catalog storage failure", err)
	}

	return &session{
		store: st,
		log:   log,
		out:   out,
		ctx:   commandContext(cmd),
	}, nil
}

// Close releases the store and flushes the logger.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Errorw("Error closing catalog", "error", err)
	}
	_ = s.log.Sync()
}

// outcome maps a store or catalog-file error to rendered output and an
// exit code. The two catalog outcomes get their fixed notices; anything
// else is a command error and never shown as one of them.
func (s *session) outcome(err error) error {
	return renderOutcome(s.out, err)
}

func renderOutcome(out *OutputFormatter, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return out.fail(ExitFailure, ErrCodeLawNotFound, MsgLawNotFound, err)
	case errors.Is(err, store.ErrDuplicateName):
		return out.fail(ExitFailure, ErrCodeLawExists, MsgLawExists, err)
	case errors.Is(err, catalogfile.ErrInvalidDocument),
		errors.Is(err, catalogfile.ErrUnsupportedFormat):
		return out.fail(ExitCommandError, ErrCodeInvalidFile, "invalid catalog file", err)
	case errors.Is(err, store.ErrStorage):
		return out.fail(ExitCommandError, ErrCodeStorage, "catalog storage failure", err)
	default:
		return out.fail(ExitCommandError, ErrCodeGeneric, "command failed", err)
	}
}

// commandContext returns cmd's context, or Background when unset
// (commands executed directly in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
