package background

import (
	"context"
	"sync"
)

// Scope - abstract concurrency scope.
// Members are started with Go, the first member returned non-nil error cancels the scope.
type Scope struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	scope     sync.WaitGroup

	once sync.Once
	err  error
}

// NewScope - concurrency scope builder, the scope context is derived from parent.
// Returned cancel func cancels scope context and waits all members are done.
func NewScope(parent context.Context) (scope *Scope, cancel func()) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancelFunc := context.WithCancel(parent)
	s := &Scope{
		ctx:       ctx,
		ctxCancel: cancelFunc,
	}
	return s,
		func() {
			s.ctxCancel()
			s.scope.Wait()
		}
}

// Context - return background context
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go - runs fn as a scope member in new goroutine.
func (s *Scope) Go(fn func(ctx context.Context) error) {
	s.scope.Add(1)
	go func() {
		defer s.scope.Done()
		if err := fn(s.ctx); err != nil {
			s.once.Do(func() {
				s.err = err
				s.ctxCancel()
			})
		}
	}()
}

// Wait - blocks until all members are done and returns the first member error.
func (s *Scope) Wait() error {
	s.scope.Wait()
	return s.err
}
