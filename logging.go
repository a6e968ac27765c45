package tridiff

import (
	"io"

	"github.com/sirupsen/logrus"
)

// logrusLogger lets Options embed a *logrus.Logger field without every
// file that touches Options needing to import logrus directly.
type logrusLogger = logrus.Logger

// diagnostics is the advisory, non-blocking logging sink shared by diff
// computation, parsing, and applying to record conditions that are
// informational or tolerated rather than rejected (binary content
// rejection and the chosen algorithm from Options.log(); a hunk's
// declared length not matching its recomputed length or a fuzz-search
// fallback past the preferred offset from the separate variadic
// *logrus.Logger accepted by Parse/Apply). It is never consulted for
// control flow and defaults to a fully discarded sink, so the library
// stays silent and side-effect-free unless a caller opts in.
var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithLogger returns a copy of opts carrying logger as its diagnostics
// sink. Passing nil restores the default discard sink.
func (o Options) WithLogger(logger *logrus.Logger) Options {
	out := o
	out.logger = logger
	return out
}

func (o Options) log() *logrus.Logger {
	if o.logger == nil {
		return discardLogger
	}
	return o.logger
}
