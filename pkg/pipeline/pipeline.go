// Package pipeline tessellates and repairs a batch of solid parts in
// parallel. Parts are independent, so one bad part never aborts its
// siblings; its failure is carried in that part's Result.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kwhite/capmill/pkg/kernel"
	"github.com/kwhite/capmill/pkg/repair"
)

// Part is one solid to mesh, usually a keycap body, legend, or stem.
type Part struct {
	Name    string
	Tag     kernel.PartTag
	Solid   kernel.Solid
	Quality kernel.Quality
}

// Result pairs a part with its repaired mesh. Exactly one of Mesh and
// Err is set; Diagnostics may be non-empty either way.
type Result struct {
	Part        Part
	Mesh        *kernel.Mesh
	Diagnostics []repair.Diagnostic
	Err         error
}

// Options configures a batch run. The zero value selects defaults.
type Options struct {
	// Tolerance is passed through to mesh repair. Zero keeps the
	// repair default.
	Tolerance float64

	// Workers bounds concurrent parts. Zero means GOMAXPROCS.
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run meshes every part and returns one Result per part, in input
// order. Cancelling ctx stops unstarted parts; their results carry
// the context error.
func Run(ctx context.Context, k kernel.Kernel, parts []Part, opts Options) []Result {
	results := make([]Result, len(parts))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, p := range parts {
		g.Go(func() error {
			results[i] = runOne(ctx, k, p, opts)
			return nil
		})
	}
	g.Wait()

	return results
}

func runOne(ctx context.Context, k kernel.Kernel, p Part, opts Options) Result {
	res := Result{Part: p}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("part %q: %w", p.Name, err)
		return res
	}

	faces, err := k.Tessellate(p.Solid, p.Quality)
	if err != nil {
		res.Err = fmt.Errorf("tessellate %q: %w", p.Name, err)
		return res
	}

	mesh, diags, err := repair.Repair(p.Name, p.Tag, faces, repair.Options{Tolerance: opts.Tolerance})
	res.Diagnostics = diags
	if err != nil {
		res.Err = err
		return res
	}
	res.Mesh = mesh
	return res
}
