package domain

import (
	"context"
	"sync"
	"sync/atomic"
)

// CancellationSignal is a one-shot flag shared between the job goroutine and the goroutine
// delivering a cancel command. Once set it stays set.
type CancellationSignal struct {
	set  atomic.Bool
	once sync.Once
	done chan struct{}
	lazy sync.Once
}

// NewCancellationSignal creates an unset signal.
func NewCancellationSignal() *CancellationSignal {
	s := &CancellationSignal{}
	s.channel()
	return s
}

func (s *CancellationSignal) channel() chan struct{} {
	s.lazy.Do(func() {
		s.done = make(chan struct{})
	})
	return s.done
}

// Set raises the signal. It reports whether this call raised it.
func (s *CancellationSignal) Set() bool {
	raised := false
	s.once.Do(func() {
		s.set.Store(true)
		close(s.channel())
		raised = true
	})
	return raised
}

// IsSet reports whether the signal was raised.
func (s *CancellationSignal) IsSet() bool {
	return s.set.Load()
}

// Done returns a channel closed once the signal is raised.
func (s *CancellationSignal) Done() <-chan struct{} {
	return s.channel()
}

// Bind returns a context cancelled with ErrJobCancelled when the signal is raised.
// Tasks observe cancellation through this context and stop at their own checkpoints.
func (s *CancellationSignal) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	go func() {
		select {
		case <-s.Done():
			cancel(ErrJobCancelled)
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}
