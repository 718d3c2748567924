// Package pkggraph detects import cycles between workspace packages.
package pkggraph

// Graph is a directed graph of package import edges, keyed by package path
// ("workspace", "workspace/lib/collections", ...).
type Graph struct {
	nodes map[string]bool
	edges map[string][]string
}

// New returns an empty package graph.
func New() *Graph {
	return &Graph{nodes: map[string]bool{}, edges: map[string][]string{}}
}

// AddNode registers a package path, even if it has no edges.
func (g *Graph) AddNode(path string) {
	g.nodes[path] = true
}

// AddEdge records that from imports to. Both paths are registered as nodes
// if not already present.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from] = append(g.edges[from], to)
}
