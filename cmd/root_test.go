package cmd

import (
	"testing"

	"github.com/nx-tools/nxgraph/pkg/types"
)

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	want := map[string]bool{
		"query-all": false,
		"query":     false,
		"unused":    false,
		"graph":     false,
		"affected":  false,
		"chain":     false,
		"cycles":    false,
		"rank":      false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command should have %q subcommand", name)
		}
	}
}

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "nxgraph" {
		t.Errorf("expected Use='nxgraph', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if rootCmd.Version == "" {
		t.Error("root command should have a version set")
	}
}

func TestVerboseFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	if f == nil {
		t.Fatal("verbose flag not registered")
	}
	if f.Shorthand != "v" {
		t.Errorf("verbose shorthand should be 'v', got %q", f.Shorthand)
	}
	if f.DefValue != "false" {
		t.Errorf("verbose default should be 'false', got %q", f.DefValue)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", &types.UsageError{Message: "bad flag"}, 1},
		{"workspace", &types.WorkspaceError{Message: "missing"}, 2},
		{"git", &types.GitError{Message: "no ref"}, 2},
		{"parse threshold", &types.ExitError{Code: 3, Message: "parse failed"}, 3},
		{"other", &types.QueryError{Message: "x"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%T) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestChainAndCyclesFlagDefaults(t *testing.T) {
	if f := chainCmd.Flags().Lookup("max-paths"); f == nil || f.DefValue != "100" {
		t.Error("chain --max-paths default should be 100")
	}
	if f := chainCmd.Flags().Lookup("max-depth"); f == nil || f.DefValue != "10" {
		t.Error("chain --max-depth default should be 10")
	}
	if f := cyclesCmd.Flags().Lookup("max-cycles"); f == nil || f.DefValue != "100" {
		t.Error("cycles --max-cycles default should be 100")
	}
}
