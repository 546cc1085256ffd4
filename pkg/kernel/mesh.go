package kernel

// PartTag marks what a part is for so the container writer can assign
// materials downstream.
type PartTag string

const (
	TagBody   PartTag = "body"
	TagLegend PartTag = "legend"
	TagStem   PartTag = "stem"
)

// Mesh is a repaired, export-ready triangle mesh for one named part.
// Vertices holds deduplicated positions; Triangles holds index triples
// into Vertices. A Mesh is built once per part per run and never
// mutated after hand-off.
type Mesh struct {
	Name      string
	Tag       PartTag
	Vertices  [][3]float64
	Triangles [][3]int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}
