package repair

// fanFill closes a boundary loop with a triangle fan anchored at the
// loop's first vertex, producing len(loop)-2 triangles and no new
// vertices. Winding is chosen so each patch traverses its boundary
// edges opposite to the surviving triangle on the other side, which
// keeps the patch normals agreeing with the surrounding surface;
// without this the patch shows up in slicers as an inverted-normal
// artifact. A non-planar loop is still closed topologically even
// though the fan's triangle quality is not guaranteed.
func fanFill(loop []int, verts [][3]float64, tris []Triangle) []Triangle {
	if len(loop) < 3 {
		return nil
	}

	reversed := loopRunsWithSurface(loop, tris)

	anchor := loop[0]
	patches := make([]Triangle, 0, len(loop)-2)
	for i := 1; i+1 < len(loop); i++ {
		a, b := loop[i], loop[i+1]
		if reversed {
			a, b = b, a
		}
		patches = append(patches, Triangle{V: [3]int{anchor, a, b}, Face: PatchFace})
	}
	return patches
}

// loopRunsWithSurface reports whether the traced loop traverses its
// edges in the same direction as the adjacent surviving triangles. In
// a consistently wound mesh the two triangles sharing an edge traverse
// it in opposite directions, so a patch must run counter to its
// neighbors; when the loop already runs with the surface the fan has
// to be flipped. The first loop edge found on a surviving triangle
// decides for the whole loop.
func loopRunsWithSurface(loop []int, tris []Triangle) bool {
	dir := make(map[[2]int]bool, len(tris)*3)
	for _, t := range tris {
		dir[[2]int{t.V[0], t.V[1]}] = true
		dir[[2]int{t.V[1], t.V[2]}] = true
		dir[[2]int{t.V[2], t.V[0]}] = true
	}
	for i := range loop {
		u, v := loop[i], loop[(i+1)%len(loop)]
		if dir[[2]int{u, v}] {
			return true
		}
		if dir[[2]int{v, u}] {
			return false
		}
	}
	return false
}

// --- minimal vector helpers on [3]float64 ---

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// triNormal returns the unnormalized normal of the triangle with the
// given vertex indices. Magnitude is twice the triangle area, which is
// fine for orientation tests.
func triNormal(verts [][3]float64, t [3]int) [3]float64 {
	e1 := sub(verts[t[1]], verts[t[0]])
	e2 := sub(verts[t[2]], verts[t[0]])
	return cross(e1, e2)
}
