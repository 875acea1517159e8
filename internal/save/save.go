// Package save implements spec.md §5's persistence offload: one-shot
// save requests carried out on a background worker pool, each optionally
// reporting its outcome on a reply channel rather than blocking the
// simulation thread. Nothing in this package feeds a Result into a
// session's ingress queue.
package save

import (
	"context"

	"github.com/novaspire/worldcore/internal/ecs"
	"golang.org/x/sync/errgroup"
)

// Request is one save-phase enqueue (spec.md phase 22: "push dirty
// entities onto the save queue").
type Request struct {
	Entity ecs.EntityID
	Reply  chan<- Result
}

// Result is delivered on Request.Reply once the write completes; a
// request with a nil Reply gets no Result.
type Result struct {
	Entity ecs.EntityID
	Err    error
}

// Writer performs the actual persistence write for one entity; it is the
// only part of this package that touches a database driver.
type Writer func(ctx context.Context, entity ecs.EntityID) error

// Pool runs queued Requests across a bounded set of goroutines (spec.md
// §5: "Persistence is offloaded to a background worker pool"). Disk I/O
// failures never reach the simulation thread except as a Result.Err on
// the reply channel.
type Pool struct {
	write       Writer
	concurrency int
}

// NewPool builds a Pool with the given concurrency limit and write
// function.
func NewPool(concurrency int, write Writer) *Pool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pool{write: write, concurrency: concurrency}
}

// Run drains requests, fanning them out across the pool's concurrency
// limit via an errgroup, and posts a Result on each request's Reply
// channel. Run blocks until every queued request has been attempted;
// callers invoke it from a dedicated goroutine, never from the
// simulation loop.
func (p *Pool) Run(ctx context.Context, requests []Request) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, req := range requests {
		req := req
		g.Go(func() error {
			err := p.write(gctx, req.Entity)
			if req.Reply != nil {
				req.Reply <- Result{Entity: req.Entity, Err: err}
			}
			return nil // a single entity's write failure never aborts the batch
		})
	}

	return g.Wait()
}
