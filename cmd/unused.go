package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
)

var unusedCmd = &cobra.Command{
	Use:          "unused <workspace>",
	Short:        "List entities nothing depends on",
	Long:         "List entities with no incoming dependency edges. Components and web\nworkers are excluded (they are referenced outside the import graph), as\nare entities declared in main.ts or index.ts entry points.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := analysisContext()
		defer cancel()

		eng, _, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		output.WriteEntityRows(os.Stdout, eng.Unused())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unusedCmd)
}
