package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/nx-tools/nxgraph/internal/config"
	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/internal/pipeline"
	"github.com/nx-tools/nxgraph/internal/query"
	"github.com/nx-tools/nxgraph/pkg/types"
)

// analysisContext returns a context cancelled by SIGINT, so an aborted
// scan commits no partial results.
func analysisContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadEngine validates the workspace argument, runs the analysis
// pipeline with a progress spinner, and returns the query engine plus the
// project config (nil if none).
func loadEngine(ctx context.Context, workspaceArg string) (*query.Engine, *config.ProjectConfig, error) {
	dir, err := filepath.Abs(workspaceArg)
	if err != nil {
		return nil, nil, &types.UsageError{Message: fmt.Sprintf("cannot resolve path %q: %v", workspaceArg, err)}
	}
	if err := validateWorkspace(dir); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadProjectConfig(dir, configPath)
	if err != nil {
		return nil, nil, &types.WorkspaceError{Message: err.Error()}
	}

	diag := output.NewDiag(os.Stderr, verbose)
	spinner := pipeline.NewSpinner(os.Stderr)
	spinner.Start("Analyzing...")
	defer spinner.Stop()

	eng, err := pipeline.New(diag, func(stage, detail string) {
		spinner.Update(detail)
	}).Run(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

// validateWorkspace checks that dir exists and is a directory. Whether it
// holds any TypeScript sources is checked later by the pipeline.
func validateWorkspace(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return &types.WorkspaceError{Message: fmt.Sprintf("directory not found: %s", dir)}
	}
	if err != nil {
		return &types.WorkspaceError{Message: fmt.Sprintf("cannot access directory: %v", err)}
	}
	if !info.IsDir() {
		return &types.WorkspaceError{Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	return nil
}

// parseKindFilter parses the --entity-type flag value.
func parseKindFilter(flag string) ([]types.EntityKind, error) {
	if flag == "" {
		return nil, nil
	}
	kinds, unknown := types.ParseEntityKinds(flag)
	if len(unknown) > 0 {
		return nil, &types.UsageError{Message: fmt.Sprintf("unknown entity type(s): %s", strings.Join(unknown, ", "))}
	}
	return kinds, nil
}

// reportQueryError prints a QueryError and signals the caller to exit 0
// with empty output; any other error passes through.
func reportQueryError(err error) error {
	if qErr, ok := err.(*types.QueryError); ok {
		fmt.Fprintf(os.Stderr, "nxgraph: %s\n", qErr.Message)
		return nil
	}
	return err
}
