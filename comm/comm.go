package comm

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// deposit is one rank's contribution to a collective step.
type deposit struct {
	kind  string
	value any
}

// step is a single rendezvous shared by all ranks of a group.
type step struct {
	slots   []deposit
	arrived int
	done    chan struct{}
}

// world is the state shared by every rank of one Run.
type world struct {
	size int

	mu    sync.Mutex
	steps map[uint64]*step

	left     chan struct{}
	leftOnce sync.Once
}

func newWorld(size int) *world {
	return &world{
		size:  size,
		steps: make(map[uint64]*step),
		left:  make(chan struct{}),
	}
}

// join records a contribution for step seq and returns the step.
// The last rank to arrive closes done and retires the step.
func (w *world) join(seq uint64, rank int, d deposit) *step {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.steps[seq]
	if !ok {
		s = &step{slots: make([]deposit, w.size), done: make(chan struct{})}
		w.steps[seq] = s
	}
	s.slots[rank] = d
	s.arrived++
	if s.arrived == w.size {
		delete(w.steps, seq)
		close(s.done)
	}

	return s
}

// leave marks that some rank stopped participating.
func (w *world) leave() {
	w.leftOnce.Do(func() { close(w.left) })
}

// Comm is one rank's handle on its group. A Comm is owned by a single goroutine
// and must not be shared.
type Comm struct {
	rank int
	w    *world
	seq  uint64
}

// Rank returns the rank of this handle within its group.
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *Comm) Size() int { return c.w.size }

// IsRoot reports whether this rank is Root.
func (c *Comm) IsRoot() bool { return c.rank == Root }

// Run executes fn on size ranks concurrently and waits for all of them.
// The context passed to fn is cancelled as soon as any rank fails; the first
// error is returned.
func Run(ctx context.Context, size int, fn func(ctx context.Context, c *Comm) error) error {
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	w := newWorld(size)
	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < size; r++ {
		c := &Comm{rank: r, w: w}
		g.Go(func() (err error) {
			// A failing rank aborts the group through gctx once its error has
			// been recorded; only clean exits mark the group as left.
			defer func() {
				if err == nil {
					w.leave()
				}
			}()
			return fn(gctx, c)
		})
	}

	return g.Wait()
}

// rendezvous deposits v for the next collective step and blocks until every
// rank has deposited, the context is cancelled, or a rank leaves the group.
// The returned slots are shared and must be treated as read-only.
func (c *Comm) rendezvous(ctx context.Context, kind string, v any) ([]deposit, error) {
	seq := c.seq
	c.seq++

	s := c.w.join(seq, c.rank, deposit{kind: kind, value: v})
	select {
	case <-s.done:
	case <-ctx.Done():
		select {
		case <-s.done:
		default:
			return nil, fmt.Errorf("%w: %s at step %d on rank %d: %v",
				ErrAborted, kind, seq, c.rank, context.Cause(ctx))
		}
	case <-c.w.left:
		select {
		case <-s.done:
		default:
			return nil, fmt.Errorf("%w: %s at step %d on rank %d: a rank left the group",
				ErrMismatch, kind, seq, c.rank)
		}
	}

	for r, d := range s.slots {
		if d.kind != kind {
			return nil, fmt.Errorf("%w: rank %d issued %s while rank %d issued %s at step %d",
				ErrMismatch, c.rank, kind, r, d.kind, seq)
		}
	}

	return s.slots, nil
}

func (c *Comm) checkRoot(root int) error {
	if root < 0 || root >= c.w.size {
		return fmt.Errorf("%w: %d (size %d)", ErrInvalidRoot, root, c.w.size)
	}
	return nil
}
