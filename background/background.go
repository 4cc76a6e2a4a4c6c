// Package background runs fire-and-forget tasks and lets the owner wait for
// them on shutdown.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrShutdown = errors.New("background: shutting down")

type Background struct {
	log logrus.FieldLogger

	wg       sync.WaitGroup
	mu       sync.Mutex
	shutdown bool
}

func New(log logrus.FieldLogger) *Background {
	return &Background{log: log}
}

// Go runs fn on its own goroutine. Panics are recovered and logged. Once
// Shutdown has been called new tasks are refused.
func (b *Background) Go(fn func()) error {
	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		return ErrShutdown
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.log.WithField("message", fmt.Sprint(r)).Error("PANIC in background task")
			}
		}()
		fn()
	}()
	return nil
}

// Wait blocks until every task started so far has returned, or ctx is done.
func (b *Background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown refuses new tasks and waits for running ones.
func (b *Background) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.shutdown = true
	b.mu.Unlock()

	return b.Wait(ctx)
}
