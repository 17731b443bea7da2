package schedule

import (
	"context"
)

// BestEffort is the handle of a write the interactive flow does not wait
// for. Ignoring it is the normal use; Wait and Done let callers that need
// the outcome observe it.
type BestEffort struct {
	done chan struct{}
	err  error
}

// runBestEffort starts fn on its own goroutine. The context's cancellation
// is detached so tearing down the caller does not abort the write.
// onDone, if set, runs on that goroutine with fn's result before Done closes.
func runBestEffort(ctx context.Context, fn func(context.Context) error, onDone func(error)) *BestEffort {
	be := &BestEffort{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(be.done)
		be.err = fn(ctx)
		if onDone != nil {
			onDone(be.err)
		}
	}()
	return be
}

// Done is closed once the write has finished.
func (b *BestEffort) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the write finishes or ctx ends. It returns the write
// error, or ctx's error if it gave up first.
func (b *BestEffort) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the write result once Done is closed, nil before.
func (b *BestEffort) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}
