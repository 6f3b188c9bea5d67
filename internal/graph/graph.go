// Package graph holds the entity dependency graph and its traversal
// algorithms: reverse-reachability for affected computation, bounded path
// enumeration, and elementary-cycle finding.
package graph

import (
	"sort"

	"github.com/nx-tools/nxgraph/internal/parser"
	"github.com/nx-tools/nxgraph/internal/resolve"
	"github.com/nx-tools/nxgraph/pkg/types"
)

// Graph is the entity dependency graph in forward and reverse adjacency
// form. An edge A -> B means A's declaring file imports a binding that
// resolves to B. Write-once during Build, read-many afterward.
type Graph struct {
	Nodes map[types.EntityID]*types.EntityRecord
	Out   map[types.EntityID][]types.EntityID
	In    map[types.EntityID][]types.EntityID

	records []types.EntityRecord
}

// Build assembles the graph from extracted files. Every entity declared in
// a file shares that file's imports: per-entity use-site tracking is
// unreliable without a type checker, and the coarsening over-approximates,
// which is safe for affected and unused queries.
func Build(res *resolve.Resolver, extracts []*parser.FileExtract) *Graph {
	g := &Graph{
		Nodes:   make(map[types.EntityID]*types.EntityRecord),
		Out:     make(map[types.EntityID][]types.EntityID),
		In:      make(map[types.EntityID][]types.EntityID),
		records: res.Entities(),
	}
	for i := range g.records {
		g.Nodes[g.records[i].ID] = &g.records[i]
	}

	outSets := make(map[types.EntityID]map[types.EntityID]bool)

	for _, fe := range extracts {
		var consumers []types.EntityID
		for i := range fe.Entities {
			if fe.Entities[i].Exported {
				consumers = append(consumers, fe.Entities[i].ID)
			}
		}
		if len(consumers) == 0 {
			continue
		}

		for i := range fe.Imports {
			imp := &fe.Imports[i]
			if len(imp.Bindings) == 0 {
				continue // side-effect imports carry no edges
			}
			for _, b := range imp.Bindings {
				for _, target := range res.ResolveBinding(imp.ResolvedFile, b) {
					if g.Nodes[target] == nil {
						continue
					}
					for _, consumer := range consumers {
						if consumer == target {
							continue // self-loops are dropped
						}
						set := outSets[consumer]
						if set == nil {
							set = make(map[types.EntityID]bool)
							outSets[consumer] = set
						}
						set[target] = true
					}
				}
			}
		}
	}

	for consumer, set := range outSets {
		for target := range set {
			g.Out[consumer] = append(g.Out[consumer], target)
			g.In[target] = append(g.In[target], consumer)
		}
	}
	for id := range g.Out {
		g.sortNeighbors(g.Out[id])
	}
	for id := range g.In {
		g.sortNeighbors(g.In[id])
	}

	return g
}

// Records returns every node's EntityRecord, unsorted.
func (g *Graph) Records() []types.EntityRecord {
	out := make([]types.EntityRecord, len(g.records))
	copy(out, g.records)
	return out
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.Out {
		n += len(targets)
	}
	return n
}

// less orders entities by name, then file: the deterministic order every
// query's output follows.
func (g *Graph) less(a, b types.EntityID) bool {
	na, nb := g.Nodes[a], g.Nodes[b]
	if na == nil || nb == nil {
		return a < b
	}
	if na.Name != nb.Name {
		return na.Name < nb.Name
	}
	return na.File < nb.File
}

func (g *Graph) sortNeighbors(ids []types.EntityID) {
	sort.Slice(ids, func(i, j int) bool { return g.less(ids[i], ids[j]) })
}

// SortedIDs returns all node IDs in name-then-file order.
func (g *Graph) SortedIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	g.sortNeighbors(ids)
	return ids
}
