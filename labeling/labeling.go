// Package labeling labels connected components of a distributed integer field.
//
// Callers depend on the Service interface only. Centralized, the default
// implementation, gathers the field on the root rank, labels it with the
// serial gridgraph labeler, and scatters the result back so that every rank
// holds identical labels. A distributed implementation can replace it without
// touching callers.
//
// Label is collective: every rank must call it, in the same order as every
// other collective. If labeling fails on the root, every rank returns the
// root's error.
package labeling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/comm"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/gridgraph"
)

// Mode selects plain labeling or anchored iceberg identification.
type Mode struct {
	// Icebergs switches from plain labeling to iceberg identification.
	Icebergs bool
	// Anchor is the value that anchors a component when Icebergs is set.
	Anchor int
}

// Plain labels every component with a distinct positive id.
func Plain() Mode { return Mode{} }

// Icebergs marks components that contain no anchor-valued cell with 1 and
// all other cells with 0.
func Icebergs(anchor int) Mode { return Mode{Icebergs: true, Anchor: anchor} }

// String describes the mode for logs.
func (m Mode) String() string {
	if m.Icebergs {
		return fmt.Sprintf("icebergs(anchor=%d)", m.Anchor)
	}
	return "plain"
}

// Service labels connected components of a field in place.
// Input cells > 0 take part in components; cells <= 0 are background.
type Service interface {
	Label(ctx context.Context, f *grid.IntField, mode Mode) error
}

// Centralized labels on the root rank through gather and scatter.
// It is stateless apart from its logger and safe to share between fields.
type Centralized struct {
	log *zap.Logger
}

// Option configures a Centralized service.
type Option func(*Centralized)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Centralized) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCentralized returns the gather/label/scatter service.
func NewCentralized(opts ...Option) *Centralized {
	c := &Centralized{log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Label implements Service.
//
// Cost: O(Mx×My) communication and O(Mx×My) work on the root.
func (c *Centralized) Label(ctx context.Context, f *grid.IntField, mode Mode) error {
	g := f.Grid()
	cm := g.Comm()

	buf, err := f.PutOnRoot(ctx)
	if err != nil {
		return fmt.Errorf("labeling: %w", err)
	}

	var rootErr error
	if cm.IsRoot() {
		var n int
		if mode.Icebergs {
			n, rootErr = gridgraph.IdentifyIcebergs(buf, g.Mx, g.My, mode.Anchor)
		} else {
			n, rootErr = gridgraph.Label(buf, g.Mx, g.My)
		}
		if rootErr != nil {
			rootErr = fmt.Errorf("labeling: %s on %s: %w", mode, f.Name(), rootErr)
		} else {
			c.log.Debug("Labeled components",
				zap.String("field", f.Name()),
				zap.Stringer("mode", mode),
				zap.Int("components", n))
		}
	}
	if err := cm.BcastError(ctx, comm.Root, rootErr); err != nil {
		return err
	}

	if err := f.GetFromRoot(ctx, buf); err != nil {
		return fmt.Errorf("labeling: %w", err)
	}
	return nil
}
