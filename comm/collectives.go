package comm

import (
	"context"
	"fmt"
)

// kindOf names a collective together with its element type so that ranks
// calling the same collective with different types are reported as mismatched.
func kindOf[T any](name string) string {
	var zero T
	return fmt.Sprintf("%s[%T]", name, zero)
}

// Barrier blocks until every rank of the group has called Barrier.
func (c *Comm) Barrier(ctx context.Context) error {
	_, err := c.rendezvous(ctx, "barrier", nil)
	return err
}

// Allreduce combines v element-wise across all ranks with op and returns the
// result on every rank. All ranks must pass slices of the same length.
// Contributions are combined in rank order.
func Allreduce[T Number](ctx context.Context, c *Comm, op Op, v []T) ([]T, error) {
	own := make([]T, len(v))
	copy(own, v)

	slots, err := c.rendezvous(ctx, kindOf[T]("allreduce/"+op.String()), own)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(v))
	for r, d := range slots {
		part := d.value.([]T)
		if len(part) != len(v) {
			return nil, fmt.Errorf("%w: rank %d sent %d values, rank %d sent %d",
				ErrSizeMismatch, r, len(part), c.rank, len(v))
		}
		if r == 0 {
			copy(out, part)
			if op == OpLOR {
				for k := range out {
					out[k] = truth[T](out[k] != 0)
				}
			}
			continue
		}
		for k, x := range part {
			out[k] = combine(op, out[k], x)
		}
	}

	return out, nil
}

// AllreduceScalar is Allreduce for a single value.
func AllreduceScalar[T Number](ctx context.Context, c *Comm, op Op, v T) (T, error) {
	out, err := Allreduce(ctx, c, op, []T{v})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

func combine[T Number](op Op, a, b T) T {
	switch op {
	case OpMax:
		return max(a, b)
	case OpMin:
		return min(a, b)
	case OpLOR:
		return truth[T](a != 0 || b != 0)
	default:
		return a + b
	}
}

func truth[T Number](b bool) T {
	if b {
		return 1
	}
	return 0
}

// Gather collects v from every rank on root. Root receives one slice per rank,
// indexed by rank; every other rank receives nil.
func Gather[T any](ctx context.Context, c *Comm, root int, v []T) ([][]T, error) {
	if err := c.checkRoot(root); err != nil {
		return nil, err
	}
	own := make([]T, len(v))
	copy(own, v)

	slots, err := c.rendezvous(ctx, kindOf[T]("gather"), own)
	if err != nil {
		return nil, err
	}
	if c.rank != root {
		return nil, nil
	}

	out := make([][]T, len(slots))
	for r, d := range slots {
		out[r] = d.value.([]T)
	}

	return out, nil
}

// Scatter distributes parts[r] from root to rank r. Only root's parts are
// read; it must hold exactly Size slices. Every rank receives its own copy.
func Scatter[T any](ctx context.Context, c *Comm, root int, parts [][]T) ([]T, error) {
	if err := c.checkRoot(root); err != nil {
		return nil, err
	}

	var own [][]T
	if c.rank == root {
		if len(parts) != c.w.size {
			// Still join the step so the other ranks are released with an error.
			_, _ = c.rendezvous(ctx, kindOf[T]("scatter/invalid"), nil)
			return nil, fmt.Errorf("%w: scatter needs %d parts, got %d", ErrSizeMismatch, c.w.size, len(parts))
		}
		own = make([][]T, len(parts))
		for r, p := range parts {
			own[r] = append([]T(nil), p...)
		}
	}

	slots, err := c.rendezvous(ctx, kindOf[T]("scatter"), own)
	if err != nil {
		return nil, err
	}

	all := slots[root].value.([][]T)
	out := make([]T, len(all[c.rank]))
	copy(out, all[c.rank])

	return out, nil
}

// Bcast sends v from root to every rank. Each rank receives its own copy.
func Bcast[T any](ctx context.Context, c *Comm, root int, v []T) ([]T, error) {
	if err := c.checkRoot(root); err != nil {
		return nil, err
	}
	var own []T
	if c.rank == root {
		own = append([]T(nil), v...)
	}

	slots, err := c.rendezvous(ctx, kindOf[T]("bcast"), own)
	if err != nil {
		return nil, err
	}
	src := slots[root].value.([]T)
	out := make([]T, len(src))
	copy(out, src)

	return out, nil
}

// BcastError propagates the outcome of a root-only section to every rank.
// Root passes its error (or nil); all ranks return that same error.
func (c *Comm) BcastError(ctx context.Context, root int, rootErr error) error {
	if err := c.checkRoot(root); err != nil {
		return err
	}
	var own error
	if c.rank == root {
		own = rootErr
	}

	slots, err := c.rendezvous(ctx, "bcast-error", own)
	if err != nil {
		return err
	}
	if e, ok := slots[root].value.(error); ok && e != nil {
		return e
	}

	return nil
}

// ExchangeHalo sends first to the rank below and last to the rank above, and
// returns what those neighbours sent: below holds rank-1's last, above holds
// rank+1's first. Missing neighbours yield nil.
func ExchangeHalo[T any](ctx context.Context, c *Comm, first, last []T) (below, above []T, err error) {
	own := [2][]T{append([]T(nil), first...), append([]T(nil), last...)}

	slots, err := c.rendezvous(ctx, kindOf[T]("halo"), own)
	if err != nil {
		return nil, nil, err
	}
	if c.rank > 0 {
		below = append([]T(nil), slots[c.rank-1].value.([2][]T)[1]...)
	}
	if c.rank < c.w.size-1 {
		above = append([]T(nil), slots[c.rank+1].value.([2][]T)[0]...)
	}

	return below, above, nil
}

// Check ends a section in which any rank may fail locally. Every rank passes
// its own outcome; if any rank failed, all ranks return an error. A rank that
// failed gets its own error back, the others get ErrPeerFailed naming the
// lowest failing rank.
func (c *Comm) Check(ctx context.Context, local error) error {
	slots, err := c.rendezvous(ctx, "check", local)
	if err != nil {
		return err
	}
	if local != nil {
		return local
	}
	for r, d := range slots {
		if e, ok := d.value.(error); ok && e != nil {
			return fmt.Errorf("%w: rank %d: %w", ErrPeerFailed, r, e)
		}
	}

	return nil
}
