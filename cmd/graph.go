package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
)

var graphCmd = &cobra.Command{
	Use:          "graph <workspace>",
	Short:        "Export the dependency graph as D3-compatible JSON",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := analysisContext()
		defer cancel()

		eng, _, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		return output.WriteGraphJSON(os.Stdout, eng.Graph)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
