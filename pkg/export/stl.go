package export

import (
	"fmt"
	"math"

	"github.com/hschendel/stl"

	"github.com/kwhite/capmill/pkg/kernel"
)

// WriteSTL writes one mesh as binary STL. STL carries no color or
// part identity, so each part gets its own file; this format exists
// for slicer and mesh-viewer debugging next to the 3MF output.
func WriteSTL(path string, m *kernel.Mesh) error {
	if m == nil || m.IsEmpty() {
		return fmt.Errorf("export: mesh for %q: %w", path, ErrNoMeshes)
	}

	solid := stl.Solid{
		Name:      m.Name,
		IsAscii:   false,
		Triangles: make([]stl.Triangle, len(m.Triangles)),
	}
	for i, t := range m.Triangles {
		var tri stl.Triangle
		for j, idx := range t {
			v := m.Vertices[idx]
			tri.Vertices[j] = stl.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
		}
		tri.Normal = faceNormal(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])
		solid.Triangles[i] = tri
	}

	if err := solid.WriteFile(path); err != nil {
		return fmt.Errorf("export: write %q: %w", path, err)
	}
	return nil
}

func faceNormal(a, b, c [3]float64) stl.Vec3 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	mag := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if mag == 0 {
		return stl.Vec3{}
	}
	return stl.Vec3{float32(nx / mag), float32(ny / mag), float32(nz / mag)}
}
