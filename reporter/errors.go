// Package reporter collects and formats the diagnostics produced while
// loading and validating one interface: parse errors, import resolution
// failures, type-legality violations, method redefinitions and id-rule
// violations all flow through a single Handler so they share one
// file:line-prefixed text format and one ordering guarantee.
package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is returned by Handler.Error, and so by a pipeline
// stage, when one or more errors were reported to the Handler, whatever
// its Reporter returned from Report.
var ErrInvalidSource = errors.New("aidl: invalid source")

// Pos is a source location: a file path and a 1-based line number. The
// zero value means "no location known."
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	if p.File == "" {
		return ""
	}
	if p.Line <= 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// ErrorWithPos is an error that carries the source position responsible
// for it.
type ErrorWithPos interface {
	error
	GetPosition() Pos
	Unwrap() error
}

// Error wraps err with pos, producing an ErrorWithPos.
func Error(pos Pos, err error) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: err}
}

// Errorf builds an ErrorWithPos the way fmt.Errorf builds an error.
func Errorf(pos Pos, format string, args ...interface{}) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	pos        Pos
}

func (e errorWithPos) Error() string {
	if e.pos.File == "" {
		return e.underlying.Error()
	}
	return fmt.Sprintf("%s %v", e.pos, e.underlying)
}

func (e errorWithPos) GetPosition() Pos { return e.pos }
func (e errorWithPos) Unwrap() error    { return e.underlying }

var _ ErrorWithPos = errorWithPos{}

// AlreadyDefinedError reports that a canonical type name was declared with
// a different kind, or in a different file, than an earlier declaration of
// the same name.
type AlreadyDefinedError struct {
	Name               string
	PreviousDefinition Pos
}

func AlreadyDefined(name string, previousDefinition Pos) AlreadyDefinedError {
	return AlreadyDefinedError{Name: name, PreviousDefinition: previousDefinition}
}

func (e AlreadyDefinedError) Error() string {
	return fmt.Sprintf("%s already declared with a different kind or in a different file, previously defined at %s", e.Name, e.PreviousDefinition)
}
