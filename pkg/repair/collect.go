package repair

import "github.com/kwhite/capmill/pkg/kernel"

// Triangle is one triangle of the working mesh: three indices into the
// shared vertex buffer plus the face it came from, kept so diagnostics
// can name the source face.
type Triangle struct {
	V    [3]int
	Face kernel.FaceID
}

// PatchFace marks triangles synthesized by hole patching rather than
// collected from a tessellated face.
const PatchFace kernel.FaceID = -1

// collect flattens per-face triangulations into a single position
// buffer and triangle list, offsetting each face's local indices past
// the nodes of the faces before it. A face without a triangulation is
// skipped and recorded; it reduces coverage, never aborts collection.
func collect(faces []kernel.Face) ([][3]float64, []Triangle, []Diagnostic) {
	var verts [][3]float64
	var tris []Triangle
	var diags []Diagnostic

	for _, f := range faces {
		if f.Triangulation == nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagSkippedFace,
				Face:    f.ID,
				Loop:    -1,
				Message: "face has no triangulation",
			})
			continue
		}

		offset := len(verts)
		verts = append(verts, f.Triangulation.Nodes...)
		for _, t := range f.Triangulation.Triangles {
			tris = append(tris, Triangle{
				V:    [3]int{t[0] + offset, t[1] + offset, t[2] + offset},
				Face: f.ID,
			})
		}
	}

	return verts, tris, diags
}
