// Package query runs the command-specific algorithms over the built
// entity graph: enumeration, lookup, unused detection, affected
// propagation, path finding, cycle listing, and ranking.
package query

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/nx-tools/nxgraph/internal/graph"
	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/internal/parser"
	"github.com/nx-tools/nxgraph/pkg/types"
)

// projectPrefixes maps --project values to FileID prefixes.
var projectPrefixes = map[string]string{
	"web":    "apps/web/",
	"mobile": "apps/mobile/",
	"libs":   "libs/",
}

// Engine answers queries against one analyzed workspace. All fields are
// write-once during the pipeline; every method is read-only.
type Engine struct {
	Scan     *types.ScanResult
	Extracts []*parser.FileExtract
	Graph    *graph.Graph

	fileSet map[types.FileID]bool
	byFile  map[types.FileID][]types.EntityRecord
}

// NewEngine builds an Engine over the pipeline's outputs.
func NewEngine(scan *types.ScanResult, extracts []*parser.FileExtract, g *graph.Graph) *Engine {
	e := &Engine{
		Scan:     scan,
		Extracts: extracts,
		Graph:    g,
		fileSet:  make(map[types.FileID]bool),
		byFile:   make(map[types.FileID][]types.EntityRecord),
	}
	for _, f := range scan.Files {
		e.fileSet[f.RelPath] = true
	}
	for _, rec := range g.Records() {
		e.byFile[rec.File] = append(e.byFile[rec.File], rec)
	}
	return e
}

// All returns every entity, optionally filtered by kind, in deterministic
// name-then-file order.
func (e *Engine) All(kinds []types.EntityKind) []types.EntityRecord {
	var out []types.EntityRecord
	for _, rec := range e.Graph.Records() {
		if len(kinds) > 0 && !kindIn(rec.Kind, kinds) {
			continue
		}
		out = append(out, rec)
	}
	types.SortEntities(out)
	return out
}

// ByName looks up entities by name. A quoted argument switches from exact
// match to substring match.
func (e *Engine) ByName(arg string, kinds []types.EntityKind) []types.EntityRecord {
	substr := false
	name := arg
	if len(arg) >= 2 {
		first, last := arg[0], arg[len(arg)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			substr = true
			name = arg[1 : len(arg)-1]
		}
	}

	var out []types.EntityRecord
	for _, rec := range e.Graph.Records() {
		if len(kinds) > 0 && !kindIn(rec.Kind, kinds) {
			continue
		}
		if substr {
			if strings.Contains(rec.Name, name) {
				out = append(out, rec)
			}
		} else if rec.Name == name {
			out = append(out, rec)
		}
	}
	types.SortEntities(out)
	return out
}

// Unused returns entities nothing depends on. Components and workers are
// referenced outside the import graph (templates, worker URLs), and
// main.ts/index.ts files are entry points, so those never count.
func (e *Engine) Unused() []types.EntityRecord {
	var out []types.EntityRecord
	for _, rec := range e.Graph.Records() {
		if len(e.Graph.In[rec.ID]) > 0 {
			continue
		}
		if rec.Kind == types.KindComponent || rec.Kind == types.KindWorker {
			continue
		}
		base := path.Base(string(rec.File))
		if base == "main.ts" || base == "index.ts" {
			continue
		}
		out = append(out, rec)
	}
	types.SortEntities(out)
	return out
}

// AffectedOptions configures the affected computation.
type AffectedOptions struct {
	Base       string
	Transitive bool
	Project    string
}

// AffectedResult is the affected entity set plus the file set it came
// from, for the --paths and --tests output modes.
type AffectedResult struct {
	Entities []types.EntityRecord
	Files    []types.FileID // declaring files of affected entities
}

// ChangedLister abstracts the git adapter: anything that can list the
// files changed relative to a base ref.
type ChangedLister interface {
	ChangedFiles(ctx context.Context, base string) ([]types.FileID, error)
}

// Affected maps changed files (relative to the base ref) to their
// entities, expands to reverse dependents, and filters by project.
func (e *Engine) Affected(ctx context.Context, git ChangedLister, opts AffectedOptions) (*AffectedResult, error) {
	changed, err := git.ChangedFiles(ctx, opts.Base)
	if err != nil {
		return nil, err
	}

	var seeds []types.EntityID
	for _, f := range changed {
		for _, rec := range e.byFile[f] {
			seeds = append(seeds, rec.ID)
		}
	}

	ids := e.Graph.Affected(seeds, opts.Transitive)

	prefix := projectPrefixes[opts.Project]
	result := &AffectedResult{}
	fileSeen := make(map[types.FileID]bool)
	for _, id := range ids {
		rec := e.Graph.Nodes[id]
		if prefix != "" && !strings.HasPrefix(string(rec.File), prefix) {
			continue
		}
		result.Entities = append(result.Entities, *rec)
		if !fileSeen[rec.File] {
			fileSeen[rec.File] = true
			result.Files = append(result.Files, rec.File)
		}
	}
	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i] < result.Files[j] })
	return result, nil
}

// Dirs returns the unique directories of the affected files, one per
// line for `affected --paths`.
func (r *AffectedResult) Dirs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Files {
		dir := path.Dir(string(f))
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out
}

// Tests locates sibling test files for each affected file:
// F.ts -> F.spec.ts or F.test.ts.
func (e *Engine) Tests(r *AffectedResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Files {
		stem := strings.TrimSuffix(string(f), ".ts")
		for _, suffix := range []string{".spec.ts", ".test.ts"} {
			candidate := types.FileID(stem + suffix)
			if e.fileSet[candidate] && !seen[string(candidate)] {
				seen[string(candidate)] = true
				out = append(out, string(candidate))
			}
		}
	}
	sort.Strings(out)
	return out
}

// Chain enumerates dependency paths between all entities named start and
// all named end. Unknown endpoints are a QueryError: the caller prints
// the message and exits 0 with empty output.
func (e *Engine) Chain(start, end string, maxDepth, maxPaths int, shortest bool) ([][]string, error) {
	starts := e.idsByName(start)
	ends := e.idsByName(end)
	if len(starts) == 0 {
		return nil, &types.QueryError{Message: "no entity named " + start}
	}
	if len(ends) == 0 {
		return nil, &types.QueryError{Message: "no entity named " + end}
	}

	paths := e.Graph.Paths(graph.PathQuery{
		Starts:   starts,
		Ends:     ends,
		MaxDepth: maxDepth,
		MaxPaths: maxPaths,
		Shortest: shortest,
	})

	return e.namePaths(paths), nil
}

// Cycles enumerates elementary cycles as entity-name lists.
func (e *Engine) Cycles(maxCycles, maxDepth int) [][]string {
	return e.namePaths(e.Graph.Cycles(maxCycles, maxDepth))
}

// Rank orders entities by dependency count (out-degree), ascending.
func (e *Engine) Rank() []output.RankedEntity {
	records := e.All(nil)
	rows := make([]output.RankedEntity, 0, len(records))
	for _, rec := range records {
		rows = append(rows, output.RankedEntity{
			Degree: len(e.Graph.Out[rec.ID]),
			Entity: rec,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Degree < rows[j].Degree
	})
	return rows
}

func (e *Engine) idsByName(name string) []types.EntityID {
	var out []types.EntityID
	for _, rec := range e.Graph.Records() {
		if rec.Name == name {
			out = append(out, rec.ID)
		}
	}
	return out
}

func (e *Engine) namePaths(paths [][]types.EntityID) [][]string {
	out := make([][]string, 0, len(paths))
	for _, p := range paths {
		names := make([]string, len(p))
		for i, id := range p {
			names[i] = e.Graph.Nodes[id].Name
		}
		out = append(out, names)
	}
	return out
}

func kindIn(k types.EntityKind, kinds []types.EntityKind) bool {
	for _, kk := range kinds {
		if k == kk {
			return true
		}
	}
	return false
}
