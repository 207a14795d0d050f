// Package domain contains the core domain models for the page link graph.
package domain

import (
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring"
)

// Digraph is a directed graph over uint32 vertex identifiers.
// Each vertex that has been the origin of an Add call owns a destination set.
// Vertices that only appear as destinations are not vertices of the graph.
type Digraph struct {
	adj map[uint32]*roaring.Bitmap
}

// NewDigraph creates a new empty Digraph.
func NewDigraph() *Digraph {
	return &Digraph{
		adj: make(map[uint32]*roaring.Bitmap),
	}
}

// Add creates origin if needed and unions destinations into its edge set.
// Repeated calls for the same origin accumulate; duplicates collapse.
func (g *Digraph) Add(origin uint32, destinations ...uint32) {
	bm, ok := g.adj[origin]
	if !ok {
		bm = roaring.New()
		g.adj[origin] = bm
	}
	bm.AddMany(destinations)
}

// SetSuccessors replaces the destination set of v.
func (g *Digraph) SetSuccessors(v uint32, destinations *roaring.Bitmap) {
	if destinations == nil {
		destinations = roaring.New()
	}
	g.adj[v] = destinations
}

// Has reports whether v is a vertex of the graph.
func (g *Digraph) Has(v uint32) bool {
	_, ok := g.adj[v]
	return ok
}

// Successors returns the destination set of v, or nil if v is not a vertex.
// The bitmap is owned by the graph and must not be modified by callers.
func (g *Digraph) Successors(v uint32) *roaring.Bitmap {
	return g.adj[v]
}

// Vertices returns an iterator over all vertices in ascending order.
func (g *Digraph) Vertices() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, v := range slices.Sorted(maps.Keys(g.adj)) {
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of vertices.
func (g *Digraph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the total number of edges.
func (g *Digraph) EdgeCount() uint64 {
	var n uint64
	for _, bm := range g.adj {
		n += bm.GetCardinality()
	}
	return n
}

// Compact converts every destination set to its most compact container form.
// It does not change the logical contents of the graph.
func (g *Digraph) Compact() {
	for _, bm := range g.adj {
		bm.RunOptimize()
	}
}
