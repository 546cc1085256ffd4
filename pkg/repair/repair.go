// Package repair turns a kernel-produced triangulation into a
// watertight, exportable triangle mesh for one named part.
//
// Tessellators emit each face independently, so seams carry duplicated
// vertex positions and the occasional zero-area sliver. Welding those
// positions into a shared vertex buffer is what connects the faces
// into one mesh, and it is also what deletes collapsed triangles and
// opens boundary holes. The pipeline detects the resulting boundary
// edges, traces them into closed loops, and closes each loop with a
// fan patch oriented to match the surrounding surface.
//
// Stages are strictly sequential and free of shared mutable state;
// everything a stage learns about defective input is returned as a
// Diagnostic value rather than logged or treated as an error, so
// callers can run parts in parallel and decide themselves what a
// defect means.
package repair

import (
	"errors"
	"fmt"

	"github.com/kwhite/capmill/pkg/kernel"
)

// DefaultTolerance is the vertex merge tolerance in mesh units,
// suitable for millimeter-scale parts.
const DefaultTolerance = 1e-4

// ErrEmptyPart reports a part that ended with zero triangles after all
// stages. It fails that part only; sibling parts are unaffected.
var ErrEmptyPart = errors.New("repair: part has no survivable triangles")

// Options configures a repair run. The zero value selects defaults.
type Options struct {
	// Tolerance is the vertex merge distance. Zero or negative selects
	// DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return DefaultTolerance
}

// Repair runs the full pipeline over one part's tessellated faces:
// collect, weld, detect boundaries, trace loops, patch, assemble.
// It returns the repaired mesh together with the diagnostics of every
// defect it recovered from. The only error condition is a part with no
// surviving geometry; every other defect is a diagnostic.
func Repair(name string, tag kernel.PartTag, faces []kernel.Face, opts Options) (*kernel.Mesh, []Diagnostic, error) {
	verts, tris, diags := collect(faces)

	verts, tris, weldDiags := weld(verts, tris, opts.tolerance())
	diags = append(diags, weldDiags...)

	loops, traceDiags := traceLoops(boundaryEdges(tris))
	diags = append(diags, traceDiags...)

	var patches []Triangle
	for _, loop := range loops {
		patches = append(patches, fanFill(loop, verts, tris)...)
	}

	mesh, openDiags := assemble(name, tag, verts, tris, patches)
	diags = append(diags, openDiags...)

	if mesh.IsEmpty() {
		return nil, diags, fmt.Errorf("part %q: %w", name, ErrEmptyPart)
	}
	return mesh, diags, nil
}
