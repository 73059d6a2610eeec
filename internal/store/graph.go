package store

// PrereqGraph is a directed adjacency structure mapping a course code to
// its direct prerequisite codes.
//
// The graph itself only rejects self-loops and duplicate edges. It does
// NOT perform transitive cycle detection: the registry service rejects
// direct reciprocal edges before insertion, so only two-node cycles are
// ever guarded against. Cycles of length three or more are representable
// on purpose; this mirrors the behavior the system has always had.
type PrereqGraph struct {
	edges map[string][]string
}

// NewPrereqGraph creates an empty prerequisite graph.
func NewPrereqGraph() *PrereqGraph {
	return &PrereqGraph{edges: make(map[string][]string)}
}

// HasEdge reports whether prereq is a direct prerequisite of course.
func (g *PrereqGraph) HasEdge(course, prereq string) bool {
	for _, p := range g.edges[course] {
		if p == prereq {
			return true
		}
	}
	return false
}

// AddEdge records prereq as a direct prerequisite of course. Returns
// false when course == prereq or the edge already exists.
func (g *PrereqGraph) AddEdge(course, prereq string) bool {
	if course == prereq {
		return false
	}
	if g.HasEdge(course, prereq) {
		return false
	}
	g.edges[course] = append(g.edges[course], prereq)
	return true
}

// PrereqsOf returns the direct prerequisites of course, unordered.
// Returns nil when the course has none.
func (g *PrereqGraph) PrereqsOf(course string) []string {
	prereqs := g.edges[course]
	if len(prereqs) == 0 {
		return nil
	}
	out := make([]string, len(prereqs))
	copy(out, prereqs)
	return out
}
