// Package export writes repaired part meshes to printable files: a
// colored multi-part 3MF container as the primary format, and binary
// STL per part for slicer debugging.
package export

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hpinc/go3mf"
	"github.com/hpinc/go3mf/materials"

	"github.com/kwhite/capmill/pkg/kernel"
)

// ErrNoMeshes reports an export call with nothing to write.
var ErrNoMeshes = errors.New("export: no meshes")

const colorGroupID = 1

// Body and stem print in the base filament, legends in the contrast
// filament. Slicers key filament assignment off these material colors.
var (
	grayColor  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	blackColor = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

func colorIndex(tag kernel.PartTag) uint32 {
	if tag == kernel.TagLegend {
		return 1
	}
	return 0
}

// BuildModel assembles a 3MF model with one object per mesh, all
// placed in a single build so the parts print assembled.
func BuildModel(meshes []*kernel.Mesh) (*go3mf.Model, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMeshes
	}

	model := &go3mf.Model{Units: go3mf.UnitMillimeter}
	model.Resources.Assets = append(model.Resources.Assets, &materials.ColorGroup{
		ID:     colorGroupID,
		Colors: []color.RGBA{grayColor, blackColor},
	})

	for i, m := range meshes {
		if m.IsEmpty() {
			return nil, fmt.Errorf("export: mesh %q is empty", m.Name)
		}
		obj := &go3mf.Object{
			ID:     colorGroupID + uint32(i) + 1,
			Name:   m.Name,
			PID:    colorGroupID,
			PIndex: colorIndex(m.Tag),
			Mesh:   meshObject(m),
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}
	return model, nil
}

func meshObject(m *kernel.Mesh) *go3mf.Mesh {
	mesh := new(go3mf.Mesh)
	mesh.Vertices.Vertex = make([]go3mf.Point3D, len(m.Vertices))
	for i, v := range m.Vertices {
		mesh.Vertices.Vertex[i] = go3mf.Point3D{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	mesh.Triangles.Triangle = make([]go3mf.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		mesh.Triangles.Triangle[i] = go3mf.Triangle{
			V1: uint32(t[0]), V2: uint32(t[1]), V3: uint32(t[2]),
		}
	}
	return mesh
}

// Write3MF writes the meshes of one keycap to a 3MF file.
func Write3MF(path string, meshes []*kernel.Mesh) error {
	model, err := BuildModel(meshes)
	if err != nil {
		return err
	}
	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("export: create %q: %w", path, err)
	}
	if err := w.Encode(model); err != nil {
		w.Close()
		return fmt.Errorf("export: encode %q: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: close %q: %w", path, err)
	}
	return nil
}
