// Package loop provides the cooperative, single-goroutine event loop each
// table runs on. Every closure posted to a Loop executes on the same
// goroutine, one at a time, so table state needs no further locking.
package loop

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrStopped is returned when posting to a loop that is no longer running.
var ErrStopped = errors.New("loop stopped")

// Loop executes posted closures sequentially.
//
// Defer queues work for the end of the current phase: a deferred closure
// runs after the closure that deferred it returns and before the next
// posted closure starts. After schedules a closure to be posted later.
type Loop struct {
	inbox    chan func()
	deferred []func()
	quit     chan struct{}
	done     chan struct{}
}

// New creates a loop with the given inbox capacity.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 256
	}
	return &Loop{
		inbox: make(chan func(), buffer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Run processes posted closures until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.quit:
			return
		case fn := <-l.inbox:
			l.exec(fn)
		}
	}
}

// Stop terminates Run. Calling Stop more than once is a no-op.
func (l *Loop) Stop() {
	select {
	case <-l.quit:
	default:
		close(l.quit)
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[LOOP] recovered from panic: %v", r)
			l.deferred = nil
		}
	}()
	fn()
	l.drain()
}

// drain runs deferred closures, including ones deferred while draining.
func (l *Loop) drain() {
	for len(l.deferred) > 0 {
		queue := l.deferred
		l.deferred = nil
		for _, fn := range queue {
			fn()
		}
	}
}

// Post enqueues fn. It blocks while the inbox is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.quit:
		return ErrStopped
	default:
	}
	select {
	case l.inbox <- fn:
		return nil
	case <-l.quit:
		return ErrStopped
	}
}

// Do posts fn and waits for it to finish, including any work it deferred.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		fn()
		l.drain()
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// Defer queues fn for the end of the current phase. It must only be called
// from closures running on the loop.
func (l *Loop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

// After posts fn once d has elapsed. The returned function cancels the
// timer if it has not fired yet.
func (l *Loop) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() {
		if err := l.Post(fn); err != nil {
			log.Printf("[LOOP] dropped delayed task: %v", err)
		}
	})
	return func() { t.Stop() }
}
