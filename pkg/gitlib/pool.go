package gitlib

import (
	"context"
	"fmt"
	"runtime"
)

// Pool hands out exclusive repository handles. libgit2 objects must not be
// shared across goroutines, so each in-flight blame checks out its own
// handle and returns it when done.
type Pool struct {
	handles chan *Repository
	all     []*Repository
}

// NewPool opens size independent handles onto the repository containing
// path. size <= 0 defaults to GOMAXPROCS.
func NewPool(path string, size int) (*Pool, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{handles: make(chan *Repository, size)}

	for range size {
		repo, err := OpenRepository(path)
		if err != nil {
			pool.Close()

			return nil, fmt.Errorf("open pool handle: %w", err)
		}

		pool.all = append(pool.all, repo)
		pool.handles <- repo
	}

	return pool, nil
}

// Acquire checks out a handle, blocking until one is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Repository, error) {
	select {
	case repo := <-p.handles:
		return repo, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire repository handle: %w", ctx.Err())
	}
}

// Release returns a handle to the pool.
func (p *Pool) Release(repo *Repository) {
	p.handles <- repo
}

// Close frees every handle. Callers must drain in-flight work first.
func (p *Pool) Close() {
	for _, repo := range p.all {
		repo.Free()
	}

	p.all = nil
}
