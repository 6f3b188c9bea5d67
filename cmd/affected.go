package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/gitdiff"
	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/internal/query"
	"github.com/nx-tools/nxgraph/pkg/types"
)

var (
	affectedBase       string
	affectedTransitive bool
	affectedPaths      bool
	affectedTests      bool
	affectedProject    string
)

var affectedCmd = &cobra.Command{
	Use:          "affected <workspace>",
	Short:        "List entities affected by changes relative to a git base ref",
	Long:         "Map the files changed relative to --base (committed, staged, and\nunstaged) to their entities, then include every direct reverse\ndependent - or the full reverse-reachable closure with --transitive.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if affectedBase == "" {
			return &types.UsageError{Message: "affected requires --base"}
		}
		switch affectedProject {
		case "", "web", "mobile", "libs":
		default:
			return &types.UsageError{Message: "unknown --project (expected web, mobile, or libs)"}
		}

		ctx, cancel := analysisContext()
		defer cancel()

		eng, cfg, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		project := affectedProject
		if !cmd.Flags().Changed("project") {
			project = cfg.Project(affectedProject)
		}

		dir, err := filepath.Abs(args[0])
		if err != nil {
			return &types.UsageError{Message: err.Error()}
		}

		result, err := eng.Affected(ctx, gitdiff.NewAdapter(dir), query.AffectedOptions{
			Base:       affectedBase,
			Transitive: affectedTransitive,
			Project:    project,
		})
		if err != nil {
			return err
		}

		switch {
		case affectedPaths:
			output.WriteLines(os.Stdout, result.Dirs())
		case affectedTests:
			output.WriteLines(os.Stdout, eng.Tests(result))
		default:
			output.WriteEntityRows(os.Stdout, result.Entities)
		}
		return nil
	},
}

func init() {
	affectedCmd.Flags().StringVar(&affectedBase, "base", "", "git base ref to diff against")
	affectedCmd.Flags().BoolVar(&affectedTransitive, "transitive", false, "include the full reverse-reachable closure")
	affectedCmd.Flags().BoolVar(&affectedPaths, "paths", false, "print affected directories instead of entities")
	affectedCmd.Flags().BoolVar(&affectedTests, "tests", false, "print sibling test files of affected files")
	affectedCmd.Flags().StringVar(&affectedProject, "project", "", "restrict to a project: web, mobile, or libs")
	rootCmd.AddCommand(affectedCmd)
}
