// Package waveerr is the ambient error type shared by every pass:
// a typed, located error modeled on sentra's internal/errors package,
// wrapping its cause with github.com/pkg/errors so a diagnostic keeps
// a stack trace back to the point it was first raised.
package waveerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a WaveError per spec.md §7's five error kinds.
type Kind string

const (
	KindParse               Kind = "parse"
	KindInvalidPath         Kind = "invalid-path"
	KindCyclicSubstitution  Kind = "cyclic-substitution"
	KindRuntimeType         Kind = "runtime-type"
	KindOutOfMemory         Kind = "out-of-memory"
)

// SourceLocation pinpoints a diagnostic in the original Wave source.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (loc SourceLocation) String() string {
	if loc.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// WaveError is the error type every pass in this module returns for a
// diagnosable failure.
type WaveError struct {
	Kind     Kind
	Message  string
	Location SourceLocation
	cause    error
}

func (e *WaveError) Error() string {
	if loc := e.Location.String(); loc != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, loc)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *WaveError) Unwrap() error { return e.cause }

// WithCause attaches a wrapped cause, preserving e's stack trace.
func (e *WaveError) WithCause(cause error) *WaveError {
	e.cause = errors.WithStack(cause)
	return e
}

func newError(kind Kind, message string, loc SourceLocation) *WaveError {
	return &WaveError{Kind: kind, Message: message, Location: loc}
}

// NewParseError reports a parse/preprocessing failure (spec.md §7 kind 1).
func NewParseError(message string, loc SourceLocation) *WaveError {
	return newError(KindParse, message, loc)
}

// NewInvalidPathError reports a path whose interpreter returned an
// invalid destination (spec.md §7 kind 2).
func NewInvalidPathError(message string, loc SourceLocation) *WaveError {
	return newError(KindInvalidPath, message, loc)
}

// NewCyclicSubstitutionError reports a path-atom skipped by the
// substitution pass to avoid a cycle (spec.md §7 kind 3). This is a
// non-fatal diagnostic: the pass continues, leaving the atom in place.
func NewCyclicSubstitutionError(message string, loc SourceLocation) *WaveError {
	return newError(KindCyclicSubstitution, message, loc)
}

// NewRuntimeTypeError reports an operator/operand pair outside the
// admissible matrix (spec.md §7 kind 4); this is the only kind the
// emitted program itself can raise, exiting 65.
func NewRuntimeTypeError(message string, loc SourceLocation) *WaveError {
	return newError(KindRuntimeType, message, loc)
}

// NewOutOfMemoryError reports allocator exhaustion (spec.md §7 kind 5).
func NewOutOfMemoryError(message string) *WaveError {
	return newError(KindOutOfMemory, message, SourceLocation{})
}

// ExitCode maps a WaveError's kind to the sysexits(3) code cmd/wavec
// reports. spec.md §6 only pins down 0 (success), 64 EX_USAGE (CLI
// argument misuse, decided entirely within cmd/wavec, not here) and 65
// EX_DATAERR (runtime type errors); this module extends that
// convention to its own compile-time diagnostics, which are likewise
// "bad input data", and to EX_OSERR (71) for allocator exhaustion,
// which is the closest sysexits category to a resource failure.
func (e *WaveError) ExitCode() int {
	if e.Kind == KindOutOfMemory {
		return 71
	}
	return 65
}

// IsFatal reports whether a pass must stop immediately rather than
// continue to completion and surface the diagnostic afterward
// (spec.md §7 "Propagation"): parse errors and out-of-memory are
// fatal, invalid-path and cyclic-substitution are not.
func (e *WaveError) IsFatal() bool {
	return e.Kind == KindParse || e.Kind == KindOutOfMemory
}

// Diagnostics accumulates the non-fatal diagnostics a pass produces
// while still running to completion.
type Diagnostics struct {
	errs []*WaveError
}

// Add records a diagnostic.
func (d *Diagnostics) Add(err *WaveError) {
	d.errs = append(d.errs, err)
}

// Errors returns the accumulated diagnostics in report order.
func (d *Diagnostics) Errors() []*WaveError {
	return d.errs
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.errs) == 0
}
