package repair

import (
	"fmt"
	"math"
)

// gridKey is a vertex position quantized to the merge tolerance grid.
// Two positions in the same grid cell are treated as one vertex.
type gridKey [3]int64

func quantize(p [3]float64, tol float64) gridKey {
	return gridKey{
		int64(math.Round(p[0] / tol)),
		int64(math.Round(p[1] / tol)),
		int64(math.Round(p[2] / tol)),
	}
}

// weld merges near-duplicate vertex positions across face boundaries
// into a deduplicated buffer and re-indexes every triangle through the
// new mapping. The first-seen position in a grid cell is canonical.
//
// A triangle whose vertices collapse onto fewer than three distinct
// merged indices has zero area and is dropped with a diagnostic.
// Dropping it removes coverage along its edges, which is the primary
// source of the boundary holes repaired downstream; merging is still
// required, since without it the independently tessellated faces never
// form one connected mesh.
func weld(verts [][3]float64, tris []Triangle, tol float64) ([][3]float64, []Triangle, []Diagnostic) {
	index := make(map[gridKey]int, len(verts))
	remap := make([]int, len(verts))
	merged := make([][3]float64, 0, len(verts))

	for i, p := range verts {
		key := quantize(p, tol)
		j, ok := index[key]
		if !ok {
			j = len(merged)
			merged = append(merged, p)
			index[key] = j
		}
		remap[i] = j
	}

	kept := make([]Triangle, 0, len(tris))
	var diags []Diagnostic
	for _, t := range tris {
		a := remap[t.V[0]]
		b := remap[t.V[1]]
		c := remap[t.V[2]]
		if a == b || b == c || c == a {
			diags = append(diags, Diagnostic{
				Kind:    DiagDegenerateTriangle,
				Face:    t.Face,
				Loop:    -1,
				Message: fmt.Sprintf("triangle collapsed to indices (%d %d %d) during vertex merge", a, b, c),
			})
			continue
		}
		kept = append(kept, Triangle{V: [3]int{a, b, c}, Face: t.Face})
	}

	return merged, kept, diags
}
