package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nx-tools/nxgraph/internal/output"
)

var (
	cyclesMax      int
	cyclesMaxDepth int
)

var cyclesCmd = &cobra.Command{
	Use:          "cycles <workspace>",
	Short:        "List elementary dependency cycles",
	Long:         "Enumerate elementary cycles in the dependency graph. Each cycle is\nreported once, rotated to start at its lexicographically smallest\nentity.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := analysisContext()
		defer cancel()

		eng, cfg, err := loadEngine(ctx, args[0])
		if err != nil {
			return err
		}

		maxCycles := cyclesMax
		if !cmd.Flags().Changed("max-cycles") {
			maxCycles = cfg.MaxCycles(cyclesMax)
		}
		maxDepth := cyclesMaxDepth
		if !cmd.Flags().Changed("max-depth") {
			maxDepth = cfg.MaxDepth(cyclesMaxDepth)
		}

		output.WriteCycleLines(os.Stdout, eng.Cycles(maxCycles, maxDepth))
		return nil
	},
}

func init() {
	cyclesCmd.Flags().IntVar(&cyclesMax, "max-cycles", 100, "stop after this many cycles")
	cyclesCmd.Flags().IntVar(&cyclesMaxDepth, "max-depth", 10, "prune cycles longer than this many edges")
	rootCmd.AddCommand(cyclesCmd)
}
