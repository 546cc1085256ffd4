package repair

import (
	"fmt"

	"github.com/kwhite/capmill/pkg/kernel"
)

// assemble concatenates the surviving triangles and the fan patches
// into the final part mesh, then reruns the edge census. Any edge
// still used by exactly one triangle comes from a boundary the tracer
// had to abandon; it is reported, not fixed, and does not block
// export.
func assemble(name string, tag kernel.PartTag, verts [][3]float64, tris, patches []Triangle) (*kernel.Mesh, []Diagnostic) {
	all := make([]Triangle, 0, len(tris)+len(patches))
	all = append(all, tris...)
	all = append(all, patches...)

	mesh := &kernel.Mesh{
		Name:      name,
		Tag:       tag,
		Vertices:  verts,
		Triangles: make([][3]int, 0, len(all)),
	}
	for _, t := range all {
		mesh.Triangles = append(mesh.Triangles, t.V)
	}

	var diags []Diagnostic
	if open := boundaryEdges(all); len(open) > 0 {
		diags = append(diags, Diagnostic{
			Kind:    DiagUnrepairedBoundary,
			Face:    -1,
			Loop:    -1,
			Message: fmt.Sprintf("%d open edges remain after repair", len(open)),
		})
	}
	return mesh, diags
}
