package kernel

// FaceID identifies a tessellated face within one solid. It exists so
// that diagnostics can point back at the face a defective triangle
// came from; it has no meaning across solids.
type FaceID int

// Triangulation is the raw triangle buffer a tessellator produced for
// one face. Nodes are positions local to the face; Triangles index
// into Nodes. Faces are tessellated independently, so positions along
// shared edges are duplicated between faces and must be welded before
// the buffers form a single mesh.
type Triangulation struct {
	Nodes     [][3]float64
	Triangles [][3]int
}

// Face is one face of a tessellated solid. Triangulation is nil when
// the tessellator produced no result for the face, which upstream
// kernels legitimately do for some geometries.
type Face struct {
	ID            FaceID
	Triangulation *Triangulation
}
