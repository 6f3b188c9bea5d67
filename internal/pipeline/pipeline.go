// Package pipeline orchestrates the analysis stages: discover, extract in
// parallel, resolve, and build the entity graph.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nx-tools/nxgraph/internal/discovery"
	"github.com/nx-tools/nxgraph/internal/graph"
	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/internal/parser"
	"github.com/nx-tools/nxgraph/internal/query"
	"github.com/nx-tools/nxgraph/internal/resolve"
	"github.com/nx-tools/nxgraph/pkg/types"
)

// ProgressFunc is a callback for pipeline stage progress updates.
type ProgressFunc func(stage string, detail string)

// Pipeline runs the analysis stages and produces a query engine. Only the
// extraction stage is parallel; the resolver, graph builder, and queries
// run sequentially on the merged result.
type Pipeline struct {
	diag       *output.Diag
	onProgress ProgressFunc
}

// New creates a Pipeline. If onProgress is nil, a no-op is used.
func New(diag *output.Diag, onProgress ProgressFunc) *Pipeline {
	if onProgress == nil {
		onProgress = func(string, string) {}
	}
	return &Pipeline{diag: diag, onProgress: onProgress}
}

// Run analyzes the workspace at rootDir. A parse-failure rate above the
// catastrophic threshold aborts with exit code 3; individual failures are
// only warned about.
func (p *Pipeline) Run(ctx context.Context, rootDir string) (*query.Engine, error) {
	started := time.Now()

	p.onProgress("discover", "scanning workspace")
	scan, err := discovery.NewWalker().Discover(rootDir)
	if err != nil {
		return nil, err
	}
	if scan.SourceCount+scan.TestCount+scan.WorkerCount == 0 {
		return nil, &types.WorkspaceError{Message: fmt.Sprintf("no TypeScript sources found under %s", rootDir)}
	}

	p.onProgress("extract", fmt.Sprintf("parsing %s files", humanize.Comma(int64(len(scan.SourceFiles())))))
	extracted, err := parser.ParallelExtract(ctx, scan)
	if err != nil {
		return nil, err
	}

	attempted := extracted.Parsed + extracted.Failed
	if attempted > 0 && float64(extracted.Failed)/float64(attempted) > types.ParseFailureThreshold {
		return nil, &types.ExitError{
			Code:    3,
			Message: fmt.Sprintf("parse failed for %d of %d files", extracted.Failed, attempted),
		}
	}

	p.onProgress("resolve", "resolving imports")
	res := resolve.New(scan.Aliases, extracted.Files)

	p.onProgress("graph", "building dependency graph")
	g := graph.Build(res, extracted.Files)

	if p.diag != nil {
		p.diag.Notef("parsed %s files (%s) in %s",
			humanize.Comma(int64(extracted.Parsed)),
			humanize.Bytes(uint64(extracted.TotalBytes)),
			time.Since(started).Round(time.Millisecond))
		p.diag.Notef("%s entities, %s edges",
			humanize.Comma(int64(len(g.Nodes))),
			humanize.Comma(int64(g.EdgeCount())))
		if extracted.Failed > 0 {
			p.diag.Warnf("%d files failed to parse", extracted.Failed)
		}
		if res.Unresolved > 0 {
			p.diag.Warnf("%d bindings could not be resolved inside the workspace", res.Unresolved)
		}
	}

	return query.NewEngine(scan, extracted.Files, g), nil
}
