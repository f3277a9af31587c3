package report

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, level int) *bytes.Buffer {
	t.Helper()
	pterm.DisableColor()

	buf := &bytes.Buffer{}
	InitReporter(level, buf)
	return buf
}

func TestErrorsAreCountedAndShown(t *testing.T) {
	buf := newTestReporter(t, LogLevelError)

	assert.True(t, ShouldProceed())
	ReportError("Verify", errors.New("call to undefined function @B"))

	assert.False(t, ShouldProceed())
	assert.Equal(t, 1, ErrorCount())
	assert.Contains(t, buf.String(), "Verify")
	assert.Contains(t, buf.String(), "call to undefined function @B")
}

func TestLevelsFilterOutput(t *testing.T) {
	buf := newTestReporter(t, LogLevelError)

	ReportWarning("Config", "jobs is zero")
	ReportInfo("Target", "x86_64-pc-linux-gnu")
	ReportDebug("unit", struct{ Name string }{"demo"})

	assert.Empty(t, buf.String())
	assert.Equal(t, 1, WarningCount())
	assert.True(t, ShouldProceed())

	buf = newTestReporter(t, LogLevelDebug)
	ReportInfo("Target", "x86_64-pc-linux-gnu")
	ReportDebug("unit", struct{ Name string }{"demo"})

	assert.Contains(t, buf.String(), "x86_64-pc-linux-gnu")
	assert.Contains(t, buf.String(), `Name: "demo"`)
}

func TestSilentCountsButPrintsNothing(t *testing.T) {
	buf := newTestReporter(t, LogLevelSilent)

	ReportError("Emit", errors.New("disk full"))
	ReportICE("bad handle %d", 3)
	ReportSummary()

	assert.Empty(t, buf.String())
	assert.Equal(t, 2, ErrorCount())
}

func TestPhaseTiming(t *testing.T) {
	buf := newTestReporter(t, LogLevelVerbose)

	p := ReportBeginPhase("Optimizing demo")
	ReportEndPhase(p, true)
	ReportEndPhase(p, false)

	assert.True(t, p.OK)
	assert.GreaterOrEqual(t, int64(p.Dur), int64(0))
	assert.Contains(t, buf.String(), "Optimizing demo")
	assert.Contains(t, buf.String(), "Done")
	assert.NotContains(t, buf.String(), "Fail")

	ReportEndPhase(nil, true)
}

func TestFatalExits(t *testing.T) {
	buf := newTestReporter(t, LogLevelError)

	code := -1
	old := exit
	exit = func(c int) { code = c }
	defer func() { exit = old }()

	ReportFatal("cannot load %s", "backend.toml")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "cannot load backend.toml")
}

func TestConcurrentReports(t *testing.T) {
	newTestReporter(t, LogLevelVerbose)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := ReportBeginPhase("unit")
			ReportError("Unit", errors.New("failed"))
			ReportEndPhase(p, false)
		}()
	}
	wg.Wait()

	require.Equal(t, 8, ErrorCount())
}
