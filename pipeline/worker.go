package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/emerge-lang/compiler/errs"
)

// ErrAbandoned is returned when native work outlived its deadline.  The work
// itself keeps running: a native call cannot be interrupted.
var ErrAbandoned = errors.New("native work abandoned")

// guard runs fn and returns its error.  A programming error raised by fn is
// returned instead of unwinding the goroutine.
func guard(fn func() error) (err error) {
	if perr := errs.Catch(func() { err = fn() }); perr != nil {
		return perr
	}

	return err
}

// runAbandonable runs fn on a worker goroutine and waits for it until ctx is
// done.  If ctx finishes first the worker is abandoned: runAbandonable returns
// at once and onAbandon is run by the worker after fn has returned.  onAbandon
// is how the caller hands off cleanup of anything fn is still using.
func runAbandonable(ctx context.Context, fn func() error, onAbandon func()) error {
	var (
		m         sync.Mutex
		finished  bool
		abandoned bool
	)

	done := make(chan error, 1)
	go func() {
		err := guard(fn)

		m.Lock()
		finished = true
		cleanup := abandoned
		m.Unlock()

		done <- err
		if cleanup && onAbandon != nil {
			onAbandon()
		}
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		m.Lock()
		defer m.Unlock()

		// the worker may have finished while we were waiting on the lock
		if finished {
			return <-done
		}

		abandoned = true
		return fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err())
	}
}
