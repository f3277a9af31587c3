package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/errs"
)

func TestRunAbandonableFinishes(t *testing.T) {
	called := false
	err := runAbandonable(context.Background(), func() error {
		return nil
	}, func() { called = true })

	require.NoError(t, err)
	assert.False(t, called)

	boom := errors.New("boom")
	err = runAbandonable(context.Background(), func() error { return boom }, nil)
	assert.ErrorIs(t, err, boom)
}

func TestRunAbandonableTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	cleaned := make(chan struct{})

	start := time.Now()
	err := runAbandonable(ctx, func() error {
		<-release
		return nil
	}, func() { close(cleaned) })

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAbandoned)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	// the cleanup waits for the work itself
	select {
	case <-cleaned:
		t.Fatal("cleanup ran before the work finished")
	default:
	}

	close(release)
	select {
	case <-cleaned:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup never ran")
	}
}

func TestRunAbandonableCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)

	err := runAbandonable(ctx, func() error {
		<-release
		return nil
	}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAbandonableReturnsProgrammingErrors(t *testing.T) {
	err := runAbandonable(context.Background(), func() error {
		errs.Fail(&errs.NotPositionedError{Op: "add"})
		return nil
	}, nil)
	assert.ErrorIs(t, err, errs.ErrBuilderNotPositioned)

	// Other panics are not ours to recover.
	assert.Panics(t, func() {
		_ = guard(func() error { panic("boom") })
	})
}
