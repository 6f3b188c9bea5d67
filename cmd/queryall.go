package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
)

var queryAllEntityTypes string

var queryAllCmd = &cobra.Command{
	Use:          "query-all <workspace>",
	Short:        "List every entity in the workspace",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKindFilter(queryAllEntityTypes)
		if err != nil {
			return err
		}

		ctx, cancel := analysisContext()
		defer cancel()

		eng, _, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		output.WriteEntityRows(os.Stdout, eng.All(kinds))
		return nil
	},
}

func init() {
	queryAllCmd.Flags().StringVar(&queryAllEntityTypes, "entity-type", "", "comma-separated entity kinds to include")
	rootCmd.AddCommand(queryAllCmd)
}
