package repair

import (
	"fmt"
	"sort"
)

// edge is an undirected pair of vertex indices with lo < hi. Two edges
// are equal iff their vertex sets are equal.
type edge struct {
	lo, hi int
}

func makeEdge(a, b int) edge {
	if a < b {
		return edge{lo: a, hi: b}
	}
	return edge{lo: b, hi: a}
}

func (t Triangle) edges() [3]edge {
	return [3]edge{
		makeEdge(t.V[0], t.V[1]),
		makeEdge(t.V[1], t.V[2]),
		makeEdge(t.V[2], t.V[0]),
	}
}

// boundaryEdges returns every edge referenced by exactly one triangle,
// sorted by vertex index so later stages iterate deterministically.
// A boundary edge is the signature of a hole or an open mesh.
func boundaryEdges(tris []Triangle) []edge {
	count := make(map[edge]int, len(tris)*3/2)
	for _, t := range tris {
		for _, e := range t.edges() {
			count[e]++
		}
	}

	var boundary []edge
	for e, c := range count {
		if c == 1 {
			boundary = append(boundary, e)
		}
	}
	sort.Slice(boundary, func(i, j int) bool {
		if boundary[i].lo != boundary[j].lo {
			return boundary[i].lo < boundary[j].lo
		}
		return boundary[i].hi < boundary[j].hi
	})
	return boundary
}

// traceLoops reconstructs closed vertex cycles from an unordered
// boundary edge set. Each vertex on a well-formed hole boundary has
// exactly two incident boundary edges, so a walk that always follows
// the single unvisited edge at the current vertex either returns to
// its seed (a closed loop) or proves the boundary is not a simple
// cycle. Non-simple and open boundaries are abandoned with a
// diagnostic and their edges stay consumed; remaining edges are still
// traced. Loop membership is determined by connectivity alone, so it
// is invariant across runs even though each loop's starting vertex is
// an artifact of edge ordering.
func traceLoops(boundary []edge) ([][]int, []Diagnostic) {
	adj := make(map[int][]int)
	for _, e := range boundary {
		adj[e.lo] = append(adj[e.lo], e.hi)
		adj[e.hi] = append(adj[e.hi], e.lo)
	}

	visited := make(map[edge]bool, len(boundary))
	var loops [][]int
	var diags []Diagnostic
	walk := 0

	for _, seed := range boundary {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		loop := []int{seed.lo, seed.hi}
		curr := seed.hi
		closed := false

		for {
			next, unique := nextUnvisited(adj, visited, curr)
			if !unique {
				diags = append(diags, Diagnostic{
					Kind:    DiagUnrepairedBoundary,
					Face:    -1,
					Loop:    walk,
					Message: fmt.Sprintf("boundary walk stopped at vertex %d without closing", curr),
				})
				break
			}
			visited[makeEdge(curr, next)] = true
			if next == seed.lo {
				closed = true
				break
			}
			loop = append(loop, next)
			curr = next
		}

		if closed && len(loop) >= 3 {
			loops = append(loops, loop)
		}
		walk++
	}

	return loops, diags
}

// nextUnvisited returns the single boundary neighbor of v reachable
// over an unvisited edge. unique is false when there are zero or more
// than one such neighbors, either of which means the walk cannot
// continue unambiguously.
func nextUnvisited(adj map[int][]int, visited map[edge]bool, v int) (next int, unique bool) {
	next = -1
	for _, n := range adj[v] {
		if visited[makeEdge(v, n)] {
			continue
		}
		if next >= 0 {
			return -1, false
		}
		next = n
	}
	return next, next >= 0
}
