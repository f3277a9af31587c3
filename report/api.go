package report

import (
	"fmt"
	"time"

	"github.com/kr/pretty"
)

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Errors and warnings are still counted when they are not displayed.

// ReportError reports a non-fatal error under the given tag.
func ReportError(tag string, err error) {
	rep.handleMsg(errorMessage{Tag: tag, Err: err})
}

// ReportWarning reports a warning under the given tag.
func ReportWarning(tag, msg string) {
	rep.handleMsg(warningMessage{Tag: tag, Message: msg})
}

// ReportInfo reports an informational message under the given tag.
func ReportInfo(tag, msg string) {
	rep.handleMsg(infoMessage{Tag: tag, Message: msg})
}

// ReportFatal reports an error that cannot be recovered from and exits.
func ReportFatal(msg string, args ...interface{}) {
	rep.m.Lock()
	rep.errorCount++
	if rep.LogLevel > LogLevelSilent {
		displayFatal(rep.w, fmt.Sprintf(msg, args...))
	}
	rep.m.Unlock()

	exit(1)
}

// ReportICE reports an internal compiler error.  It does not exit: the caller
// decides whether the rest of the run is still meaningful.
func ReportICE(msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.LogLevel > LogLevelSilent {
		displayICE(rep.w, fmt.Sprintf(msg, args...))
	}
}

// ReportDebug dumps a value when the reporter is at the debug level.
func ReportDebug(label string, v interface{}) {
	rep.print(LogLevelDebug, fmt.Sprintf("%s: %# v\n", label, pretty.Formatter(v)))
}

// -----------------------------------------------------------------------------

// Phase is a running, timed stage of work.  Several phases may be open at once
// when units are compiled concurrently.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	OK    bool

	done bool
}

// ReportBeginPhase starts and announces a new phase.
func ReportBeginPhase(name string) *Phase {
	rep.m.Lock()
	if rep.LogLevel >= LogLevelVerbose {
		displayBeginPhase(rep.w, name)
	}
	rep.m.Unlock()

	return &Phase{Name: name, Start: time.Now()}
}

// ReportEndPhase closes a phase and prints its outcome and duration.  Ending
// a phase twice does nothing.
func ReportEndPhase(p *Phase, ok bool) {
	if p == nil || p.done {
		return
	}

	p.done = true
	p.OK = ok
	p.Dur = time.Since(p.Start)

	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.LogLevel >= LogLevelVerbose {
		displayEndPhase(rep.w, p.Name, ok, p.Dur)
	}
}

// ReportSummary prints the closing line of a run: the total time and the
// error and warning counts.
func ReportSummary() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.LogLevel == LogLevelSilent {
		return
	}

	elapsed := fmt.Sprintf("(%.3fs)", time.Since(rep.startTime).Seconds())
	if rep.errorCount == 0 {
		fmt.Fprintf(rep.w, "%s %d warning(s) %s\n", SuccessStyleBG.Sprint(" Success "), rep.warningCount, SuccessColorFG.Sprint(elapsed))
	} else {
		fmt.Fprintf(rep.w, "%s %d error(s), %d warning(s) %s\n", ErrorStyleBG.Sprint(" Failed "), rep.errorCount, rep.warningCount, ErrorColorFG.Sprint(elapsed))
	}
}
