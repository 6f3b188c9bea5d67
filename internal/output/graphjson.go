package output

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/nx-tools/nxgraph/internal/graph"
)

// D3Node is one graph node in the D3 force-layout JSON shape.
type D3Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	File string `json:"file"`
}

// D3Link is one directed edge: consumer -> dependency.
type D3Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// D3Graph is the top-level graph export structure.
type D3Graph struct {
	Nodes []D3Node `json:"nodes"`
	Links []D3Link `json:"links"`
}

// BuildD3Graph converts the entity graph into its D3 JSON form with
// deterministic node and link ordering.
func BuildD3Graph(g *graph.Graph) *D3Graph {
	out := &D3Graph{Nodes: []D3Node{}, Links: []D3Link{}}

	for _, id := range g.SortedIDs() {
		e := g.Nodes[id]
		out.Nodes = append(out.Nodes, D3Node{
			ID:   string(e.ID),
			Name: e.Name,
			Kind: e.Kind.String(),
			File: string(e.File),
		})
	}

	for _, source := range g.SortedIDs() {
		for _, target := range g.Out[source] {
			out.Links = append(out.Links, D3Link{Source: string(source), Target: string(target)})
		}
	}
	sort.Slice(out.Links, func(i, j int) bool {
		if out.Links[i].Source != out.Links[j].Source {
			return out.Links[i].Source < out.Links[j].Source
		}
		return out.Links[i].Target < out.Links[j].Target
	})

	return out
}

// WriteGraphJSON renders the D3 graph JSON to w.
func WriteGraphJSON(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildD3Graph(g))
}
