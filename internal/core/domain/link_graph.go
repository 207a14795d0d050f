package domain

// LinkGraph is the page link graph: titled pages connected by the links in
// their bodies, plus the redirect table.
//
// It composes a title table, a Digraph and an Aliases table, and normalizes
// every title before delegating to them. A LinkGraph is built by a single
// writer and is safe for concurrent readers once building is finished.
type LinkGraph struct {
	symbols *Symbols
	graph   *Digraph
	aliases *Aliases
}

// GraphStats summarizes the size of a LinkGraph.
type GraphStats struct {
	Titles  int
	Nodes   int
	Edges   uint64
	Aliases int
}

// NewLinkGraph creates an empty LinkGraph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{
		symbols: NewSymbols(),
		graph:   NewDigraph(),
		aliases: NewAliases(),
	}
}

// AssembleLinkGraph builds a LinkGraph from already populated parts.
// The identifiers used by graph and aliases must come from symbols.
func AssembleLinkGraph(symbols *Symbols, graph *Digraph, aliases *Aliases) *LinkGraph {
	return &LinkGraph{
		symbols: symbols,
		graph:   graph,
		aliases: aliases,
	}
}

// Add records that origin links to every title in destinations.
// The origin becomes a node even when destinations is empty.
func (g *LinkGraph) Add(origin string, destinations []string) {
	from := g.symbols.Intern(NormalizeTitle(origin))
	ids := make([]uint32, len(destinations))
	for i, d := range destinations {
		ids[i] = g.symbols.Intern(NormalizeTitle(d))
	}
	g.graph.Add(from, ids...)
}

// Neighbors returns the titles node links to, or nil if node is not a node.
func (g *LinkGraph) Neighbors(node string) []string {
	id, ok := g.symbols.Lookup(NormalizeTitle(node))
	if !ok {
		return nil
	}
	bm := g.graph.Successors(id)
	if bm == nil {
		return nil
	}
	res := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		res = append(res, g.symbols.Title(it.Next()))
	}
	return res
}

// Contains reports whether node is a node of the graph.
func (g *LinkGraph) Contains(node string) bool {
	id, ok := g.symbols.Lookup(NormalizeTitle(node))
	return ok && g.graph.Has(id)
}

// AddAlias records that alias redirects to canonical.
func (g *LinkGraph) AddAlias(alias, canonical string) {
	g.aliases.Add(
		g.symbols.Intern(NormalizeTitle(alias)),
		g.symbols.Intern(NormalizeTitle(canonical)),
	)
}

// Resolve returns the redirect target of name, or the normalized name itself
// when it is not a redirect. Only one hop is followed.
func (g *LinkGraph) Resolve(name string) string {
	name = NormalizeTitle(name)
	id, ok := g.symbols.Lookup(name)
	if !ok {
		return name
	}
	if canonical, ok := g.aliases.Lookup(id); ok {
		return g.symbols.Title(canonical)
	}
	return name
}

// Node normalizes and resolves name and returns its identifier if the
// result is a node of the graph.
func (g *LinkGraph) Node(name string) (uint32, bool) {
	id, ok := g.symbols.Lookup(NormalizeTitle(name))
	if !ok {
		return 0, false
	}
	id = g.aliases.Resolve(id)
	if !g.graph.Has(id) {
		return 0, false
	}
	return id, true
}

// RewriteAliases replaces every link to a redirect with a link to its target.
// It must run once after all pages and redirects have been added and before
// any path query. It returns the number of links rewritten.
func (g *LinkGraph) RewriteAliases() int {
	return g.aliases.Rewrite(g.graph)
}

// Compact shrinks the in-memory representation without changing contents.
func (g *LinkGraph) Compact() {
	g.graph.Compact()
	g.symbols.compact()
}

// Stats returns the size of the graph.
func (g *LinkGraph) Stats() GraphStats {
	return GraphStats{
		Titles:  g.symbols.Len(),
		Nodes:   g.graph.Len(),
		Edges:   g.graph.EdgeCount(),
		Aliases: g.aliases.Len(),
	}
}

// Symbols returns the title table.
func (g *LinkGraph) Symbols() *Symbols {
	return g.symbols
}

// Digraph returns the underlying identifier graph.
func (g *LinkGraph) Digraph() *Digraph {
	return g.graph
}

// Aliases returns the redirect table.
func (g *LinkGraph) Aliases() *Aliases {
	return g.aliases
}
