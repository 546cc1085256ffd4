// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kwhite/capmill/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ kernel.TextKernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution
// when the caller does not specify a quality.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered at the origin.
// Keycap construction places everything relative to the cap center, so
// center-origin primitives compose without correction offsets.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// RoundedBox creates a centered box with the given edge radius. This
// stands in for the fillet operations the part profiles call for.
func (k *SdfxKernel) RoundedBox(x, y, z, round float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, round)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder with the given height and radius,
// centered at the origin with its axis along Z.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// MirrorX reflects a solid across the YZ plane. Mirrored keycaps use
// this before boolean operations so legends land on the correct side.
func (k *SdfxKernel) MirrorX(s kernel.Solid) kernel.Solid {
	return wrap(sdf.Transform3D(unwrap(s), sdf.MirrorYZ()))
}

// Text builds an extruded text solid from a TrueType font. The glyphs
// are centered on the XY origin and extruded depth units along +Z.
func (k *SdfxKernel) Text(text, fontPath string, size, depth float64) (kernel.Solid, error) {
	f, err := sdf.LoadFont(fontPath)
	if err != nil {
		return nil, fmt.Errorf("sdfx: load font %q: %w", fontPath, err)
	}
	t := sdf.NewText(text)
	s2d, err := sdf.Text2D(f, t, size)
	if err != nil {
		return nil, fmt.Errorf("sdfx: render text %q: %w", text, err)
	}
	s3d := sdf.Extrude3D(s2d, depth)
	// Extrude3D extrudes symmetrically about z=0; shift so the solid
	// spans [0, depth].
	return k.Translate(wrap(s3d), 0, 0, depth/2), nil
}

// Tessellate runs marching cubes over the solid and splits the
// resulting triangle soup into per-face buffers, bucketed by the
// dominant axis of each triangle's normal. Each face carries an
// independent local vertex buffer with three fresh nodes per triangle,
// mirroring how surface tessellators emit faces: positions along
// shared edges are duplicated and only become shared vertices after
// welding.
func (k *SdfxKernel) Tessellate(s kernel.Solid, q kernel.Quality) ([]kernel.Face, error) {
	cells := q.MeshCells
	if cells <= 0 {
		cells = defaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(unwrap(s), renderer)

	var buckets [6]*kernel.Triangulation
	for _, tri := range triangles {
		n := tri.Normal()
		b := normalBucket(n)
		if buckets[b] == nil {
			buckets[b] = &kernel.Triangulation{}
		}
		t := buckets[b]
		base := len(t.Nodes)
		for j := 0; j < 3; j++ {
			v := tri[j]
			t.Nodes = append(t.Nodes, [3]float64{v.X, v.Y, v.Z})
		}
		t.Triangles = append(t.Triangles, [3]int{base, base + 1, base + 2})
	}

	var faces []kernel.Face
	for i, t := range buckets {
		if t == nil {
			continue
		}
		faces = append(faces, kernel.Face{ID: kernel.FaceID(i), Triangulation: t})
	}
	return faces, nil
}

// normalBucket maps a normal to one of six buckets (+X, -X, +Y, -Y,
// +Z, -Z) by its dominant component.
func normalBucket(n v3.Vec) int {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		if n.X >= 0 {
			return 0
		}
		return 1
	case ay >= az:
		if n.Y >= 0 {
			return 2
		}
		return 3
	default:
		if n.Z >= 0 {
			return 4
		}
		return 5
	}
}
