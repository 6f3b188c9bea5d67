package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// maxExtractWorkers caps the parse worker pool.
const maxExtractWorkers = 8

// ExtractResult is the merged output of the parallel extraction stage.
type ExtractResult struct {
	Files      []*FileExtract // sorted by FileID
	Parsed     int
	Failed     int
	TotalBytes int64
}

// ParallelExtract parses every non-excluded file in the scan result using a
// worker pool. Parsing is CPU-bound and embarrassingly parallel; each worker
// owns its own tree-sitter parser and writes to a per-worker bucket, merged
// after the pool drains so no locking is needed on shared state.
//
// Per-file failures are tolerated: the file's FileExtract carries Err and
// extraction continues. The caller decides whether the failure rate is
// catastrophic.
func ParallelExtract(ctx context.Context, scan *types.ScanResult) (*ExtractResult, error) {
	files := scan.SourceFiles()

	workers := runtime.NumCPU()
	if workers > maxExtractWorkers {
		workers = maxExtractWorkers
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan types.DiscoveredFile)
	buckets := make([][]*FileExtract, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			p, err := NewTreeSitterParser()
			if err != nil {
				return fmt.Errorf("create parser: %w", err)
			}
			defer p.Close()

			for f := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				buckets[w] = append(buckets[w], extractOne(p, f))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ExtractResult{}
	for _, bucket := range buckets {
		result.Files = append(result.Files, bucket...)
	}
	// Merge deterministically: FileID order stabilizes entity enumeration
	// across runs regardless of worker scheduling.
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].File < result.Files[j].File
	})

	for _, fe := range result.Files {
		if fe.Err != nil {
			result.Failed++
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", fe.File, fe.Err)
			continue
		}
		result.Parsed++
		result.TotalBytes += fe.Bytes
	}

	return result, nil
}

// extractOne reads and parses a single file. Errors are recorded on the
// FileExtract, never returned: extraction is best-effort.
func extractOne(p *TreeSitterParser, f types.DiscoveredFile) *FileExtract {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return &FileExtract{File: f.RelPath, Class: f.Class, Err: &types.ParseError{File: f.RelPath, Message: err.Error()}}
	}

	tree, err := p.ParseFile(content)
	if err != nil {
		return &FileExtract{File: f.RelPath, Class: f.Class, Err: &types.ParseError{File: f.RelPath, Message: err.Error()}}
	}
	defer tree.Close()

	out := Extract(f.RelPath, f.Class, content, tree)
	out.Bytes = int64(len(content))
	return out
}
