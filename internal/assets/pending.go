package assets

import (
	"sync"
)

// Pending is the handle to one asynchronous load. It resolves exactly once,
// either with a value or with a *LoadError.
type Pending[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   *LoadError
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// resolve publishes the outcome. Later calls are ignored.
func (p *Pending[T]) resolve(value T, err *LoadError) {
	p.once.Do(func() {
		p.value = value
		p.err = err
		close(p.done)
	})
}

// Done is closed once the load has resolved.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Poll returns the outcome without blocking. ok is false while the load is
// still running.
func (p *Pending[T]) Poll() (value T, err *LoadError, ok bool) {
	select {
	case <-p.done:
		return p.value, p.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Wait blocks until the load resolves.
func (p *Pending[T]) Wait() (T, *LoadError) {
	<-p.done
	return p.value, p.err
}
