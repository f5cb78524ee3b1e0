// Package assets loads the optional model and environment map off the
// frame thread and hands the outcome back through Pending handles.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// ErrLoaderClosed is the cause reported for loads requested after Close.
var ErrLoaderClosed = errors.New("loader closed")

// Loader runs asset loads on a small worker pool.
type Loader struct {
	mu     sync.Mutex
	pool   worker.DynamicWorkerPool
	nextID int
	closed bool

	// queued maps task IDs not yet picked up by a worker to the function
	// that fails their handle. Guarded by qmu, which workers take without mu.
	qmu    sync.Mutex
	queued map[int]func()

	fetcher     *Fetcher
	workers     int
	maxEnvWidth int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkers sets the number of concurrent loads.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) { l.workers = n }
}

// WithHTTPClient sets the client used for remote assets.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.fetcher.Client = c }
}

// WithProgress installs a download progress callback. It runs on a loader
// goroutine.
func WithProgress(fn ProgressFunc) LoaderOption {
	return func(l *Loader) { l.fetcher.Progress = fn }
}

// WithMaxEnvironmentWidth bounds decoded environment maps; 0 disables it.
func WithMaxEnvironmentWidth(w int) LoaderOption {
	return func(l *Loader) { l.maxEnvWidth = w }
}

// NewLoader creates a loader and starts its workers.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:     &Fetcher{},
		workers:     2,
		maxEnvWidth: DefaultMaxEnvironmentWidth,
		queued:      make(map[int]func()),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 8, time.Second)
	return l
}

// LoadModel starts loading a glTF/GLB model from a path or URL.
func (l *Loader) LoadModel(ctx context.Context, src string) *Pending[*Model] {
	return submit(l, ctx, KindModel, src, func(ctx context.Context) (*Model, error) {
		switch extension(src) {
		case ".gltf", ".glb":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension(src))
		}
		if !isRemote(src) {
			// local .gltf files may reference sibling buffers
			m, err := OpenModel(localPath(src))
			if err != nil {
				return nil, err
			}
			m.Source = src
			return m, nil
		}
		data, err := l.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		m, err := DecodeModel(data)
		if err != nil {
			return nil, err
		}
		m.Source = src
		return m, nil
	})
}

// LoadEnvironment starts loading an equirectangular environment map.
func (l *Loader) LoadEnvironment(ctx context.Context, src string) *Pending[*image.RGBA] {
	return submit(l, ctx, KindEnvironment, src, func(ctx context.Context) (*image.RGBA, error) {
		data, err := l.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return DecodeEnvironment(data, l.maxEnvWidth)
	})
}

// Close stops the workers. Loads already running finish on their own and
// deliver their results; loads still queued resolve with ErrLoaderClosed.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true

	l.qmu.Lock()
	queued := l.queued
	l.queued = nil
	l.qmu.Unlock()
	for _, fail := range queued {
		fail()
	}

	l.pool.ClearTaskQueue()
	l.pool.Stop()
}

// claim removes id from the queued set. It reports false when Close has
// already failed the task.
func (l *Loader) claim(id int) bool {
	l.qmu.Lock()
	defer l.qmu.Unlock()
	if _, ok := l.queued[id]; !ok {
		return false
	}
	delete(l.queued, id)
	return true
}

func submit[T any](l *Loader, ctx context.Context, kind Kind, src string, load func(context.Context) (T, error)) *Pending[T] {
	p := newPending[T]()

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		var zero T
		p.resolve(zero, &LoadError{Kind: kind, Source: src, Err: ErrLoaderClosed})
		return p
	}
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++

	l.qmu.Lock()
	l.queued[id] = func() {
		var zero T
		p.resolve(zero, &LoadError{Kind: kind, Source: src, Err: ErrLoaderClosed})
	}
	l.qmu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: src,
		Do: func() (result any, err error) {
			if !l.claim(id) {
				return nil, ErrLoaderClosed
			}
			var zero T
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
					p.resolve(zero, &LoadError{Kind: kind, Source: src, Err: err})
				}
			}()

			if err := ctx.Err(); err != nil {
				p.resolve(zero, &LoadError{Kind: kind, Source: src, Err: err})
				return nil, err
			}
			v, err := load(ctx)
			if err != nil {
				p.resolve(zero, &LoadError{Kind: kind, Source: src, Err: err})
				return nil, err
			}
			p.resolve(v, nil)
			return v, nil
		},
	})
	return p
}
