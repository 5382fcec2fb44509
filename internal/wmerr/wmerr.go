// Package wmerr defines the typed error kinds from spec.md §7, so callers
// can branch on *what kind* of failure occurred (log-and-continue vs
// abort vs fatal) without string matching.
package wmerr

import "fmt"

// Kind classifies a failure by the handling spec.md §7 prescribes.
type Kind int

const (
	// KindPlatformCallFailure: the OS rejected a call. Log at warn,
	// continue; the next reconciliation turn retries.
	KindPlatformCallFailure Kind = iota
	// KindLookupMissing: a required lookup (focused container, workspace,
	// monitor) came back empty. The command aborts and returns the error;
	// the dispatcher logs it and still runs that turn's reconciliation if
	// the ledger holds pending work.
	KindLookupMissing
	// KindInvalidHandle: the window was destroyed mid-command. Treated as
	// a no-op; a DestroyedEvent is expected shortly.
	KindInvalidHandle
	// KindInvalidConfig: a config-produced command was ill-formed (regex
	// doesn't compile, workspace name not found). Command fails
	// gracefully, no mutation applied.
	KindInvalidConfig
	// KindFatal: single-instance lock unavailable, or an unrecoverable
	// tree-invariant violation detected in debug. Process exits nonzero.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindPlatformCallFailure:
		return "platform call failure"
	case KindLookupMissing:
		return "lookup missing"
	case KindInvalidHandle:
		return "invalid handle"
	case KindInvalidConfig:
		return "invalid config"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with its Kind, so callers can type-switch
// on kind rather than format strings.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error without an underlying cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an Error around an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is a *Error of the given kind (for errors.Is-style
// checks without exposing the unexported fields).
func Is(err error, kind Kind) bool {
	we, ok := err.(*Error)
	return ok && we.Kind == kind
}
