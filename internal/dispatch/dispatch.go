// Package dispatch provides the single execution context on which all
// component state is mutated and all notifications are delivered.
//
// Network work runs on worker goroutines started with Go; its completion
// is posted back through an Executor before it touches any state.
package dispatch

import (
	"context"
	"sync"
)

// Executor runs posted functions one at a time, in post order.
type Executor interface {
	Post(fn func())
}

// Go runs work on a new goroutine and posts done with its result onto ex.
func Go[T any](ex Executor, work func() T, done func(T)) {
	go func() {
		v := work()
		ex.Post(func() { done(v) })
	}()
}

// Loop is a serial queue drained by the goroutine that calls Run.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// NewLoop creates an idle loop. Functions posted before Run are kept and
// run once Run starts.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. It never blocks. Posts after Run has returned are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done. It must be called from exactly
// one goroutine.
func (l *Loop) Run(ctx context.Context) {
	defer func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		for {
			fn := l.next()
			if fn == nil {
				break
			}
			fn()
			if ctx.Err() != nil {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// Call posts fn and waits for it to run. It returns false if ctx ends
// first. Call must not be used from inside the loop itself.
func (l *Loop) Call(ctx context.Context, fn func()) bool {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// Start runs l on a new goroutine and returns a stop function that cancels
// the loop and waits for it to exit.
func Start(l *Loop) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		l.Run(ctx)
	}()
	return func() {
		cancel()
		<-exited
	}
}
