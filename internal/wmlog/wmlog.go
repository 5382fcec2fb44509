// Package wmlog wraps the stdlib log package with the leveled helpers
// spec.md §7's error-handling design calls for ("log at warn, continue" /
// "exit code nonzero with message"). The teacher logs via bare
// log.Printf/log.Println call sites (cmd/tuios/main.go); boxwm keeps that
// same stdlib-log foundation and only adds a thin level prefix, since
// nothing in the example pack reaches for a structured logging library
// from a direct import (see DESIGN.md).
package wmlog

import (
	"log"
	"os"
)

// Logger is a leveled wrapper around a stdlib *log.Logger.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to os.Stderr with the standard stdlib
// timestamp flags.
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

// Info logs an informational line.
func (lg *Logger) Info(format string, args ...any) {
	lg.l.Printf("[info] "+format, args...)
}

// Warn logs a warning line. Used for platform-call failures that the next
// reconciliation turn will retry (spec §7).
func (lg *Logger) Warn(format string, args ...any) {
	lg.l.Printf("[warn] "+format, args...)
}

// Fatal logs and exits with a nonzero code. cmd/boxwm uses it for startup
// failures: the single-instance lock, the platform adapter, and loading
// the config.
func (lg *Logger) Fatal(format string, args ...any) {
	lg.l.Fatalf("[fatal] "+format, args...)
}

// Default is the package-level logger used where no explicit instance is
// threaded through (mirrors the teacher's reliance on the global stdlib
// logger rather than passing a logger value everywhere).
var Default = New()
