// Package logging owns process-wide logger setup.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "CALIBGEN_LOG_LEVEL"
	EnvLogNoColor = "CALIBGEN_LOG_NOCOLOR"
)

var configureOnce sync.Once

// Configure installs the console logger on the zerolog global. Safe to
// call from every command path; only the first call takes effect.
func Configure() {
	configureOnce.Do(func() {
		output := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    noColor(),
		}
		logger := zerolog.New(output).With().Timestamp().Logger().Level(level())
		log.Logger = logger
	})
}

func level() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func noColor() bool {
	if raw := os.Getenv(EnvLogNoColor); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return !isatty.IsTerminal(os.Stderr.Fd())
}
