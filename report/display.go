package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
)

// logMessage is anything the reporter can count and display.
type logMessage interface {
	level() int
	display(w io.Writer)
}

type errorMessage struct {
	Tag string
	Err error
}

func (em errorMessage) level() int { return LogLevelError }

func (em errorMessage) display(w io.Writer) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint(em.Tag)+ErrorColorFG.Sprint(" "+em.Err.Error()))
}

type warningMessage struct {
	Tag, Message string
}

func (wm warningMessage) level() int { return LogLevelWarning }

func (wm warningMessage) display(w io.Writer) {
	fmt.Fprintln(w, WarnStyleBG.Sprint(wm.Tag)+WarnColorFG.Sprint(" "+wm.Message))
}

type infoMessage struct {
	Tag, Message string
}

func (im infoMessage) level() int { return LogLevelVerbose }

func (im infoMessage) display(w io.Writer) {
	fmt.Fprintln(w, InfoStyleBG.Sprint(im.Tag)+InfoColorFG.Sprint(" "+im.Message))
}

// -----------------------------------------------------------------------------

// displayICE prints an internal compiler error banner.  These are always shown
// unless the reporter is silent.
func displayICE(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint("Internal Compiler Error")+ErrorColorFG.Sprint(" "+msg))
	fmt.Fprintln(w, "This is a bug in the backend, not in your program.  Please open an issue.")
}

func displayFatal(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint("Fatal Error")+ErrorColorFG.Sprint(" "+msg))
}

// displayEndPhase prints the closing line of a phase along with its timing.
func displayEndPhase(w io.Writer, name string, ok bool, dur time.Duration) {
	timing := fmt.Sprintf("(%.3fs)", dur.Seconds())

	if ok {
		fmt.Fprintln(w, SuccessStyleBG.Sprint(" Done ")+" "+name+" "+SuccessColorFG.Sprint(timing))
	} else {
		fmt.Fprintln(w, ErrorStyleBG.Sprint(" Fail ")+" "+name+" "+ErrorColorFG.Sprint(timing))
	}
}

func displayBeginPhase(w io.Writer, name string) {
	fmt.Fprintln(w, InfoColorFG.Sprint("...")+" "+name)
}
