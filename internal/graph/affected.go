package graph

import "github.com/nx-tools/nxgraph/pkg/types"

// Affected computes the entities impacted by a seed set. Without
// transitive, only direct reverse neighbors are added; with it, the full
// reverse-reachable closure over the transpose adjacency. Seeds are always
// included. The result is in name-then-file order.
func (g *Graph) Affected(seeds []types.EntityID, transitive bool) []types.EntityID {
	included := make(map[types.EntityID]bool)
	for _, s := range seeds {
		if g.Nodes[s] != nil {
			included[s] = true
		}
	}

	if transitive {
		queue := make([]types.EntityID, 0, len(included))
		for id := range included {
			queue = append(queue, id)
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, consumer := range g.In[cur] {
				if !included[consumer] {
					included[consumer] = true
					queue = append(queue, consumer)
				}
			}
		}
	} else {
		for _, s := range seeds {
			for _, consumer := range g.In[s] {
				included[consumer] = true
			}
		}
	}

	out := make([]types.EntityID, 0, len(included))
	for id := range included {
		out = append(out, id)
	}
	g.sortNeighbors(out)
	return out
}
