// Package logging wraps charmbracelet/log with component prefixes and a single
// process-wide configuration. All output goes to stderr so stdout stays free
// for reports.
//
//	logging.Setup(verbose, quiet, jsonFormat)
//	logger := logging.New("engine")
//	logger.Debug("validated", "node", "author.name")
//
// Setup must run before New: child loggers copy the default logger's settings
// when they are created.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases so callers do not import charmbracelet/log for levels.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the default logger. Quiet wins over verbose.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a logger prefixed with component.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
