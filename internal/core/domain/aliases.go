package domain

import (
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring"
)

// Aliases maps redirect identifiers to their canonical target identifiers.
//
// Resolution is a single hop: if a redirects to b and b redirects to c,
// Resolve(a) is b. Chains are not followed.
type Aliases struct {
	targets map[uint32]uint32
}

// NewAliases creates an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{
		targets: make(map[uint32]uint32),
	}
}

// Add records that alias redirects to canonical. A later call for the same
// alias replaces the earlier target.
func (a *Aliases) Add(alias, canonical uint32) {
	a.targets[alias] = canonical
}

// Lookup returns the canonical target of alias, if alias is known.
func (a *Aliases) Lookup(alias uint32) (uint32, bool) {
	canonical, ok := a.targets[alias]
	return canonical, ok
}

// Resolve returns the canonical target of id, or id itself if it is not an alias.
func (a *Aliases) Resolve(id uint32) uint32 {
	if canonical, ok := a.targets[id]; ok {
		return canonical
	}
	return id
}

// Len returns the number of aliases.
func (a *Aliases) Len() int {
	return len(a.targets)
}

// All returns an iterator over (alias, canonical) pairs in ascending alias order.
func (a *Aliases) All() iter.Seq2[uint32, uint32] {
	return func(yield func(uint32, uint32) bool) {
		for _, alias := range slices.Sorted(maps.Keys(a.targets)) {
			if !yield(alias, a.targets[alias]) {
				return
			}
		}
	}
}

// Rewrite replaces every destination in g that is a known alias with its
// canonical target and returns the number of destinations replaced.
//
// All aliases of a destination set are removed before their targets are
// added, so each destination moves exactly one hop per call.
func (a *Aliases) Rewrite(g *Digraph) int {
	if len(a.targets) == 0 {
		return 0
	}

	known := roaring.New()
	for alias := range a.targets {
		known.Add(alias)
	}

	rewritten := 0
	for _, bm := range g.adj {
		hits := roaring.And(bm, known)
		if hits.IsEmpty() {
			continue
		}
		bm.AndNot(hits)
		it := hits.Iterator()
		for it.HasNext() {
			bm.Add(a.targets[it.Next()])
			rewritten++
		}
	}
	return rewritten
}
