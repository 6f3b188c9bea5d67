package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
	"github.com/nx-tools/nxgraph/pkg/types"
)

var rankBy string

var rankCmd = &cobra.Command{
	Use:          "rank <workspace>",
	Short:        "Rank entities by dependency count",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rankBy != "deps" {
			return &types.UsageError{Message: "unknown --by metric (expected deps)"}
		}

		ctx, cancel := analysisContext()
		defer cancel()

		eng, _, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		output.WriteRankedRows(os.Stdout, eng.Rank())
		return nil
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankBy, "by", "deps", "ranking metric")
	rootCmd.AddCommand(rankCmd)
}
