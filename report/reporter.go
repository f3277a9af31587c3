package report

import (
	"io"
	"os"
	"sync"
	"time"
)

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, info and phase progress (DEFAULT)
	LogLevelDebug          // everything plus value dumps
)

// LogLevelNames maps the command-line spelling of each log level to its value.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarning,
	"verbose": LogLevelVerbose,
	"debug":   LogLevelDebug,
}

// reporter stores and prints the output of the backend.  Messages may come in
// from several compilation units at once so all printing goes through m.
type reporter struct {
	LogLevel int

	errorCount   int
	warningCount int

	w io.Writer
	m *sync.Mutex

	startTime time.Time
}

// rep is a global reference to the shared reporter.
var rep = reporter{
	LogLevel:  LogLevelVerbose,
	w:         os.Stdout,
	m:         &sync.Mutex{},
	startTime: time.Now(),
}

// exit is swapped out by tests.
var exit = os.Exit

// InitReporter initializes the global reporter with the provided log level.
// A nil writer means standard output.
func InitReporter(loglevel int, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	rep = reporter{
		LogLevel:  loglevel,
		w:         w,
		m:         &sync.Mutex{},
		startTime: time.Now(),
	}
}

// ShouldProceed indicates whether or not there have been any non-fatal errors
// that should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// WarningCount returns the number of warnings reported so far.
func WarningCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.warningCount
}

// handleMsg counts and, if the log level allows it, displays a message.
func (r *reporter) handleMsg(lm logMessage) {
	r.m.Lock()
	defer r.m.Unlock()

	switch lm.level() {
	case LogLevelError:
		r.errorCount++
	case LogLevelWarning:
		r.warningCount++
	}

	if r.LogLevel >= lm.level() {
		lm.display(r.w)
	}
}

// print writes raw text if the log level is at least min.
func (r *reporter) print(min int, s string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.LogLevel >= min {
		io.WriteString(r.w, s)
	}
}
