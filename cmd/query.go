package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
)

var queryEntityTypes string

var queryCmd = &cobra.Command{
	Use:          "query <name> <workspace>",
	Short:        "Look up entities by name",
	Long:         "Look up entities by exact name. Quote the name ('User') to match by\nsubstring instead.",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKindFilter(queryEntityTypes)
		if err != nil {
			return err
		}

		ctx, cancel := analysisContext()
		defer cancel()

		eng, _, err := loadEngine(ctx, args[1])
		if err != nil {
			return err
		}

		output.WriteEntityRows(os.Stdout, eng.ByName(args[0], kinds))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryEntityTypes, "entity-type", "", "comma-separated entity kinds to include")
	rootCmd.AddCommand(queryCmd)
}
