// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling and
// boolean operations behind this interface. The kernel abstraction
// allows swapping backends without changing the rest of the system.
//
// The kernel is treated purely as a data source: solids in, per-face
// triangle buffers out. Whatever defects its tessellator produces
// (absent face triangulations, duplicated seam vertices, zero-area
// slivers) are handled downstream by the repair pipeline.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Quality controls tessellation resolution. MeshCells is the grid
// resolution along the longest bounding box axis; zero selects the
// backend default. Legends use a finer quality than cap bodies so
// small glyph features survive.
type Quality struct {
	MeshCells int
}

// Kernel is the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling behind this interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	RoundedBox(x, y, z, round float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	MirrorX(s Solid) Solid                 // reflect across the YZ plane

	// Tessellate converts a solid into per-face triangle buffers.
	// A face's Triangulation may be nil; callers must tolerate that.
	Tessellate(s Solid, q Quality) ([]Face, error)
}

// TextKernel is implemented by kernels that can build extruded text
// solids. Kept separate from Kernel because not every backend has
// font support.
type TextKernel interface {
	// Text builds a solid of the given string, rendered at the given
	// glyph height and extruded depth units along +Z from z=0.
	Text(text, fontPath string, size, depth float64) (Solid, error)
}
