package graph

import "github.com/nx-tools/nxgraph/pkg/types"

// PathQuery bounds a chain search between two sets of endpoint candidates
// (all entities sharing the start/end name).
type PathQuery struct {
	Starts   []types.EntityID
	Ends     []types.EntityID
	MaxDepth int // maximum path length in edges
	MaxPaths int // stop after this many paths
	Shortest bool
}

// Paths enumerates simple paths from any start to any end. The default
// mode is a depth-first search with a visited-on-current-path set; with
// Shortest, a breadth-first search returns the first path found. Since
// starts and neighbors are visited in name-then-file order, ties resolve
// to the lexicographically smallest path.
func (g *Graph) Paths(q PathQuery) [][]types.EntityID {
	ends := make(map[types.EntityID]bool, len(q.Ends))
	for _, e := range q.Ends {
		ends[e] = true
	}

	starts := make([]types.EntityID, 0, len(q.Starts))
	for _, s := range q.Starts {
		if g.Nodes[s] != nil {
			starts = append(starts, s)
		}
	}
	g.sortNeighbors(starts)

	if q.Shortest {
		if p := g.shortestPath(starts, ends, q.MaxDepth); p != nil {
			return [][]types.EntityID{p}
		}
		return nil
	}

	var paths [][]types.EntityID
	onPath := make(map[types.EntityID]bool)

	var dfs func(cur types.EntityID, path []types.EntityID)
	dfs = func(cur types.EntityID, path []types.EntityID) {
		if q.MaxPaths > 0 && len(paths) >= q.MaxPaths {
			return
		}
		if ends[cur] && len(path) > 1 {
			found := make([]types.EntityID, len(path))
			copy(found, path)
			paths = append(paths, found)
			return
		}
		if len(path)-1 >= q.MaxDepth {
			return
		}
		for _, next := range g.Out[cur] {
			if onPath[next] {
				continue
			}
			onPath[next] = true
			dfs(next, append(path, next))
			delete(onPath, next)
		}
	}

	for _, s := range starts {
		if q.MaxPaths > 0 && len(paths) >= q.MaxPaths {
			break
		}
		onPath[s] = true
		dfs(s, []types.EntityID{s})
		delete(onPath, s)
	}
	return paths
}

// shortestPath runs a multi-source BFS and reconstructs the first path
// that reaches an end.
func (g *Graph) shortestPath(starts []types.EntityID, ends map[types.EntityID]bool, maxDepth int) []types.EntityID {
	parent := make(map[types.EntityID]types.EntityID)
	depth := make(map[types.EntityID]int)
	queue := make([]types.EntityID, 0, len(starts))

	for _, s := range starts {
		parent[s] = s
		depth[s] = 0
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Out[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			depth[next] = depth[cur] + 1
			if ends[next] {
				var path []types.EntityID
				for n := next; ; n = parent[n] {
					path = append([]types.EntityID{n}, path...)
					if parent[n] == n {
						break
					}
				}
				return path
			}
			if depth[next] < maxDepth {
				queue = append(queue, next)
			}
		}
	}
	return nil
}
