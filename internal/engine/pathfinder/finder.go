// Package pathfinder answers shortest-path queries over a finished link graph.
package pathfinder

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"go.trai.ch/wikipath/internal/core/domain"
)

// Finder runs breadth-first searches over a LinkGraph.
// The graph must not be modified while queries are running; any number of
// queries may run concurrently.
type Finder struct {
	graph *domain.LinkGraph
}

// NewFinder creates a Finder for g. Aliases in g should already be rewritten.
func NewFinder(g *domain.LinkGraph) *Finder {
	return &Finder{graph: g}
}

// FindPath returns a shortest sequence of titles from origin to destination,
// both included. Both endpoints are normalized and resolved through the
// redirect table first. It reports false when either endpoint is not a node or
// no path exists. Among several shortest paths, the one reached by visiting
// neighbors in ascending identifier order is returned.
func (f *Finder) FindPath(origin, destination string) ([]string, bool) {
	from, ok := f.graph.Node(origin)
	if !ok {
		return nil, false
	}
	to, ok := f.graph.Node(destination)
	if !ok {
		return nil, false
	}

	ids, ok := f.search(from, to)
	if !ok {
		return nil, false
	}

	symbols := f.graph.Symbols()
	path := make([]string, len(ids))
	for i, id := range ids {
		path[i] = symbols.Title(id)
	}
	return path, true
}

// search runs the breadth-first search between two node identifiers.
func (f *Finder) search(from, to uint32) ([]uint32, bool) {
	if from == to {
		return []uint32{from}, true
	}

	w := &walker{
		graph:   f.graph.Digraph(),
		visited: roaring.New(),
		through: make(map[uint32]uint32),
		queue:   []uint32{from},
	}
	w.visited.Add(from)

	if !w.walk(to) {
		return nil, false
	}
	return w.path(from, to), true
}

type walker struct {
	graph   *domain.Digraph
	visited *roaring.Bitmap
	through map[uint32]uint32
	queue   []uint32
}

// walk expands the frontier until to is discovered or the queue runs dry.
func (w *walker) walk(to uint32) bool {
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]

		next := w.graph.Successors(cur)
		if next == nil {
			continue
		}
		it := next.Iterator()
		for it.HasNext() {
			nbr := it.Next()
			if !w.visited.CheckedAdd(nbr) {
				continue
			}
			w.through[nbr] = cur
			if nbr == to {
				return true
			}
			// Titles that are only link targets have no successors to expand.
			if w.graph.Has(nbr) {
				w.queue = append(w.queue, nbr)
			}
		}
	}
	return false
}

// path walks predecessors back from to and returns the path in forward order.
func (w *walker) path(from, to uint32) []uint32 {
	res := []uint32{to}
	for cur := to; cur != from; {
		cur = w.through[cur]
		res = append(res, cur)
	}
	slices.Reverse(res)
	return res
}
