package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/pkg/types"
)

var (
	chainStart    string
	chainEnd      string
	chainShortest bool
	chainMaxPaths int
	chainMaxDepth int
)

var chainCmd = &cobra.Command{
	Use:          "chain <workspace>",
	Short:        "Enumerate dependency paths between two entities",
	Long:         "Enumerate simple dependency paths from every entity named --start to\nevery entity named --end. Name collisions fan out across all candidate\npairs.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if chainStart == "" || chainEnd == "" {
			return &types.UsageError{Message: "chain requires --start and --end"}
		}

		ctx, cancel := analysisContext()
		defer cancel()

		eng, cfg, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		maxDepth := chainMaxDepth
		if !cmd.Flags().Changed("max-depth") {
			maxDepth = cfg.MaxDepth(chainMaxDepth)
		}
		maxPaths := chainMaxPaths
		if !cmd.Flags().Changed("max-paths") {
			maxPaths = cfg.MaxPaths(chainMaxPaths)
		}

		paths, err := eng.Chain(chainStart, chainEnd, maxDepth, maxPaths, chainShortest)
		if err != nil {
			return reportQueryError(err)
		}

		output.WritePathLines(os.Stdout, paths)
		return nil
	},
}

func init() {
	chainCmd.Flags().StringVar(&chainStart, "start", "", "name of the start entity")
	chainCmd.Flags().StringVar(&chainEnd, "end", "", "name of the end entity")
	chainCmd.Flags().BoolVar(&chainShortest, "shortest", false, "emit only the shortest path")
	chainCmd.Flags().IntVar(&chainMaxPaths, "max-paths", 100, "stop after this many paths")
	chainCmd.Flags().IntVar(&chainMaxDepth, "max-depth", 10, "maximum path length in edges")
	rootCmd.AddCommand(chainCmd)
}
