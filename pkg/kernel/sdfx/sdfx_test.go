package sdfx

import (
	"math"
	"testing"

	"github.com/kwhite/capmill/pkg/kernel"
)

// tessellate is a test helper that fails on error.
func tessellate(t *testing.T, k *SdfxKernel, s kernel.Solid, cells int) []kernel.Face {
	t.Helper()
	faces, err := k.Tessellate(s, kernel.Quality{MeshCells: cells})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	return faces
}

func TestBoxTessellate(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	faces := tessellate(t, k, box, 64)

	if len(faces) == 0 {
		t.Fatal("expected at least one face")
	}
	// A box has surface area facing all six directions, so all six
	// normal buckets should be populated.
	if len(faces) != 6 {
		t.Errorf("box produced %d faces, want 6", len(faces))
	}

	total := 0
	for _, f := range faces {
		if f.Triangulation == nil {
			t.Fatalf("face %d has nil triangulation", f.ID)
		}
		total += len(f.Triangulation.Triangles)
		// Local indices must stay inside the local node buffer.
		for _, tri := range f.Triangulation.Triangles {
			for _, idx := range tri {
				if idx < 0 || idx >= len(f.Triangulation.Nodes) {
					t.Fatalf("face %d: index %d out of range [0,%d)", f.ID, idx, len(f.Triangulation.Nodes))
				}
			}
		}
	}
	if total == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("box faces: %d, triangles: %d", len(faces), total)
}

func TestCylinderTessellate(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10)
	faces := tessellate(t, k, cyl, 64)
	if len(faces) == 0 {
		t.Fatal("expected at least one face")
	}
	total := 0
	for _, f := range faces {
		total += len(f.Triangulation.Triangles)
	}
	if total == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder faces: %d, triangles: %d", len(faces), total)
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(100, 100, 100)
	boxTris := countTriangles(tessellate(t, k, box, 64))

	cyl := k.Cylinder(120, 20)
	diff := k.Difference(box, cyl)
	diffTris := countTriangles(tessellate(t, k, diff, 64))

	if diffTris == 0 {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffTris <= boxTris {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffTris, boxTris)
	}
	t.Logf("box triangles: %d, difference triangles: %d", boxTris, diffTris)
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	if countTriangles(tessellate(t, k, u, 64)) == 0 {
		t.Fatal("union mesh is empty")
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	if countTriangles(tessellate(t, k, inter, 64)) == 0 {
		t.Fatal("intersection mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Translated box(10,10,10) by (100,200,300) should be centered at
	// (100,200,300), so bounds are approximately (95,195,295) to
	// (105,205,305).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestMirrorX(t *testing.T) {
	k := New()
	box := k.Translate(k.Box(10, 10, 10), 30, 0, 0)
	mirrored := k.MirrorX(box)
	min, max := mirrored.BoundingBox()

	const tol = 0.5
	if math.Abs(min[0]-(-35)) > tol {
		t.Errorf("mirrored min X = %f, expected ~-35", min[0])
	}
	if math.Abs(max[0]-(-25)) > tol {
		t.Errorf("mirrored max X = %f, expected ~-25", max[0])
	}
}

func countTriangles(faces []kernel.Face) int {
	n := 0
	for _, f := range faces {
		if f.Triangulation != nil {
			n += len(f.Triangulation.Triangles)
		}
	}
	return n
}
