package reporter

import (
	"fmt"
	"os"
)

// Reporter is given every diagnostic as it is produced. A non-nil return
// is handed back by Handler.HandleError to its caller; the parser, the
// namespaces, the validator and the pipeline discard that value and keep
// accumulating, so it does not stop a compilation. A nil Reporter is never passed to user
// code; NewHandler substitutes a reporter that prints to stderr and keeps
// going, matching the original compiler's "accumulate within a stage"
// policy (spec.md §7).
type Reporter interface {
	Report(err ErrorWithPos) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ErrorWithPos) error

func (f ReporterFunc) Report(err ErrorWithPos) error { return f(err) }

// stderrReporter prints every diagnostic to stderr and never aborts early;
// its aggregate failure is communicated by Handler.Error() at stage
// boundaries, not by returning an error from Report.
func stderrReporter(err ErrorWithPos) error {
	fmt.Fprintln(os.Stderr, err.Error())
	return nil
}

// Handler accumulates diagnostics; Pipeline.Compile uses one Handler for
// all of its stages. It is not safe for concurrent use — this core is single-threaded
// (spec.md §5).
type Handler struct {
	rep       Reporter
	errCount  int
	firstErr  error
	warnCount int
}

// NewHandler returns a Handler that forwards diagnostics to rep. If rep is
// nil, diagnostics are printed to stderr and accumulated without aborting.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = ReporterFunc(stderrReporter)
	}
	return &Handler{rep: rep}
}

// SubHandler returns a new Handler sharing this one's Reporter but with
// its own error count, for scoping diagnostics to one sub-task (such as
// parsing a single imported file) while still reporting through the same
// sink.
func (h *Handler) SubHandler() *Handler {
	return &Handler{rep: h.rep}
}

// HandleError reports err. If the Reporter aborts (returns non-nil), that
// error is returned; otherwise nil is returned and the error is recorded
// for Error().
func (h *Handler) HandleError(err ErrorWithPos) error {
	h.errCount++
	if h.firstErr == nil {
		h.firstErr = err
	}
	return h.rep.Report(err)
}

// HandleErrorf is a convenience wrapper building an ErrorWithPos via
// Errorf and reporting it.
func (h *Handler) HandleErrorf(pos Pos, format string, args ...interface{}) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// ReportedErrors reports whether any error has been handled so far.
func (h *Handler) ReportedErrors() bool { return h.errCount > 0 }

// ErrorCount returns the number of errors handled so far.
func (h *Handler) ErrorCount() int { return h.errCount }

// Error returns ErrInvalidSource if any error was reported, whether or not
// the Reporter returned an error for it, and nil otherwise. This is the value a
// pipeline stage returns at its boundary.
func (h *Handler) Error() error {
	if h.errCount == 0 {
		return nil
	}
	return ErrInvalidSource
}
