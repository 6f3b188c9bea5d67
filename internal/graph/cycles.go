package graph

import "github.com/nx-tools/nxgraph/pkg/types"

// Cycles enumerates elementary cycles with Johnson's algorithm, bounded by
// a cycle count and a path-length cap. Each cycle is reported once,
// rotated to start at its smallest entity (name-then-file order), without
// the closing repetition of the first node.
func (g *Graph) Cycles(maxCycles, maxDepth int) [][]types.EntityID {
	cf := &cycleFinder{
		g:         g,
		order:     g.SortedIDs(),
		index:     make(map[types.EntityID]int),
		blocked:   make(map[types.EntityID]bool),
		blockList: make(map[types.EntityID][]types.EntityID),
		maxCycles: maxCycles,
		maxDepth:  maxDepth,
	}
	for i, id := range cf.order {
		cf.index[id] = i
	}

	for i, s := range cf.order {
		if cf.done {
			break
		}
		cf.startIdx = i
		cf.start = s
		cf.blocked = make(map[types.EntityID]bool)
		cf.blockList = make(map[types.EntityID][]types.EntityID)
		cf.circuit(s)
	}
	return cf.cycles
}

// cycleFinder carries Johnson's algorithm state: the blocked set, the
// B-lists used for unblocking, and the current path stack. The search is
// restricted to the subgraph of vertices ordered at or after the current
// start, so each elementary cycle is discovered exactly once, rooted at
// its smallest vertex.
type cycleFinder struct {
	g         *Graph
	order     []types.EntityID
	index     map[types.EntityID]int
	blocked   map[types.EntityID]bool
	blockList map[types.EntityID][]types.EntityID
	stack     []types.EntityID
	cycles    [][]types.EntityID
	maxCycles int
	maxDepth  int
	start     types.EntityID
	startIdx  int
	done      bool
}

func (cf *cycleFinder) circuit(v types.EntityID) bool {
	found := false
	cf.stack = append(cf.stack, v)
	cf.blocked[v] = true

	for _, w := range cf.g.Out[v] {
		if cf.done {
			break
		}
		if cf.index[w] < cf.startIdx {
			continue
		}
		if w == cf.start {
			if len(cf.stack) <= cf.maxDepth {
				cf.emit()
				found = true
			}
			continue
		}
		if cf.blocked[w] {
			continue
		}
		if len(cf.stack) >= cf.maxDepth {
			// Depth prune. Treated as found so ancestors unblock and
			// shorter cycles through them are still discovered.
			found = true
			continue
		}
		if cf.circuit(w) {
			found = true
		}
	}

	if found {
		cf.unblock(v)
	} else {
		for _, w := range cf.g.Out[v] {
			if cf.index[w] < cf.startIdx {
				continue
			}
			cf.blockList[w] = append(cf.blockList[w], v)
		}
	}

	cf.stack = cf.stack[:len(cf.stack)-1]
	return found
}

func (cf *cycleFinder) unblock(v types.EntityID) {
	cf.blocked[v] = false
	for _, w := range cf.blockList[v] {
		if cf.blocked[w] {
			cf.unblock(w)
		}
	}
	cf.blockList[v] = nil
}

// emit records the current stack as a cycle. The subgraph restriction
// means the stack already starts at the cycle's smallest vertex, which is
// the canonical rotation.
func (cf *cycleFinder) emit() {
	cycle := make([]types.EntityID, len(cf.stack))
	copy(cycle, cf.stack)
	cf.cycles = append(cf.cycles, cycle)
	if cf.maxCycles > 0 && len(cf.cycles) >= cf.maxCycles {
		cf.done = true
	}
}
