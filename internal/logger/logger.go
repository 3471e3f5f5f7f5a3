// Package logger builds the zap loggers used by lawbook.
//
// Loggers are constructed once in main and passed down explicitly;
// there is no package-level instance.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/lawbook/internal/errors"
)

// Options controls logger construction.
type Options struct {
	JSON   bool      // structured JSON output instead of console lines
	Level  string    // debug, info, warn, error
	Output io.Writer // defaults to os.Stderr
}

// New returns a SugaredLogger configured from opts.
func New(opts Options) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core).Sugar(), nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Newf("unknown log level %q", name)
	}
}

// consoleEncoderConfig keeps console lines short: level, message, fields.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
