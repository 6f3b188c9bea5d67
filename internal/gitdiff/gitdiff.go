// Package gitdiff shells out to git to list the files changed in the
// working tree relative to a base ref.
package gitdiff

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// runGit executes a git command in dir and returns its stdout. Declared as
// a variable so tests can substitute a stub.
var runGit = func(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

// Adapter lists changed files for a workspace checkout.
type Adapter struct {
	rootDir string
}

// NewAdapter creates an Adapter for the given workspace root.
func NewAdapter(rootDir string) *Adapter {
	return &Adapter{rootDir: rootDir}
}

// ChangedFiles returns the set of workspace-relative paths changed between
// the working tree (staged and unstaged) and base. A dirty tree is valid
// input; a missing git binary or unknown ref is a hard error.
func (a *Adapter) ChangedFiles(ctx context.Context, base string) ([]types.FileID, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, &types.GitError{Message: "git not found on PATH"}
	}

	if _, err := runGit(ctx, a.rootDir, "rev-parse", "--verify", "--quiet", base); err != nil {
		return nil, &types.GitError{Message: fmt.Sprintf("unknown base ref %q: %v", base, err)}
	}

	// Committed + staged + unstaged changes relative to base.
	argSets := [][]string{
		{"diff", "--name-only", base},
		{"diff", "--name-only", "--cached"},
		{"diff", "--name-only"},
	}

	seen := make(map[types.FileID]bool)
	for _, args := range argSets {
		out, err := runGit(ctx, a.rootDir, args...)
		if err != nil {
			return nil, &types.GitError{Message: err.Error()}
		}
		for _, line := range strings.Split(string(out), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			seen[types.FileID(filepath.ToSlash(line))] = true
		}
	}

	files := make([]types.FileID, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
	return files, nil
}
