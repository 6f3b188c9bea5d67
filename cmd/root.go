package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/pkg/types"
	"github.com/nx-tools/nxgraph/pkg/version"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "nxgraph",
	Short:   "Static dependency analyzer for Nx-style TypeScript monorepos",
	Long:    "nxgraph scans an Nx-style TypeScript workspace, extracts its entities\n(components, services, directives, pipes, types, functions), builds the\ndependency graph from import statements, and answers structural queries:\nlookup, unused detection, affected propagation, path finding, and cycle\ndetection.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .nxgraphrc.yml project config file")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits nonzero on error. The error
// taxonomy maps onto exit codes here: usage errors exit 1, environment
// errors (workspace, git) exit 2, catastrophic parse failures exit 3.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nxgraph: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var exitErr *types.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var usageErr *types.UsageError
	if errors.As(err, &usageErr) {
		return 1
	}
	var wsErr *types.WorkspaceError
	if errors.As(err, &wsErr) {
		return 2
	}
	var gitErr *types.GitError
	if errors.As(err, &gitErr) {
		return 2
	}
	return 1
}
