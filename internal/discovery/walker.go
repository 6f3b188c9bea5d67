// Package discovery implements the workspace loader: it walks an Nx-style
// monorepo, classifies TypeScript files, and reads the path-alias manifest
// from the workspace tsconfig.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// skipDirs lists directory names that should be skipped during walking.
var skipDirs = map[string]bool{
	".git":         true,
	".nx":          true,
	".angular":     true,
	"node_modules": true,
	"dist":         true,
	"out-tsc":      true,
	"coverage":     true,
	"tmp":          true,
}

// Walker discovers and classifies TypeScript source files in a workspace.
type Walker struct{}

// NewWalker creates a new Walker instance.
func NewWalker() *Walker {
	return &Walker{}
}

// inodeKey identifies a directory across symlinks for cycle breaking.
type inodeKey struct {
	dev uint64
	ino uint64
}

// Discover walks rootDir recursively, discovers all .ts files, classifies
// them, and loads the alias manifest. Symlinked directories are followed
// once; revisiting the same inode stops the walk down that branch.
func (w *Walker) Discover(rootDir string) (*types.ScanResult, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, &types.WorkspaceError{Message: fmt.Sprintf("cannot access workspace root: %v", err)}
	}
	if !info.IsDir() {
		return nil, &types.WorkspaceError{Message: fmt.Sprintf("%s is not a directory", rootDir)}
	}

	// Load .gitignore from root if present
	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		gitIgnore, err = ignore.CompileIgnoreFile(gitignorePath)
		if err != nil {
			return nil, &types.WorkspaceError{Message: fmt.Sprintf("failed to parse .gitignore: %v", err)}
		}
	}

	result := &types.ScanResult{RootDir: rootDir}

	visited := make(map[inodeKey]bool)
	if key, ok := statInode(rootDir); ok {
		visited[key] = true
	}

	w.walk(rootDir, rootDir, gitIgnore, visited, result)

	// Stable file order regardless of directory iteration quirks.
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})

	manifest, err := LoadAliasManifest(rootDir)
	if err != nil {
		return nil, err
	}
	result.Aliases = *manifest

	return result, nil
}

// walk recursively descends dir, following symlinked directories through
// the visited-inode set.
func (w *Walker) walk(rootDir, dir string, gitIgnore *ignore.GitIgnore, visited map[inodeKey]bool, result *types.ScanResult) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", dir, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping broken symlink %s\n", path)
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				continue
			}
			if key, ok := statInode(path); ok {
				if visited[key] {
					continue
				}
				visited[key] = true
			}
			w.walk(rootDir, path, gitIgnore, visited, result)
			continue
		}

		if !strings.HasSuffix(name, ".ts") {
			continue
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: failed to compute relative path: %v\n", path, err)
			continue
		}
		relPath = filepath.ToSlash(relPath)

		file := types.DiscoveredFile{
			Path:    path,
			RelPath: types.FileID(relPath),
		}

		if gitIgnore != nil && gitIgnore.MatchesPath(relPath) {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "gitignore"
			result.Files = append(result.Files, file)
			result.GitignoreCount++
			result.TotalFiles++
			continue
		}

		file.Class = ClassifyFile(name)
		if file.Class == types.ClassExcluded {
			if strings.HasSuffix(strings.ToLower(name), ".d.ts") {
				file.ExcludeReason = "declaration"
			} else {
				file.ExcludeReason = "hidden"
			}
			result.Files = append(result.Files, file)
			result.TotalFiles++
			continue
		}

		generated, err := isGeneratedFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: failed to check generated status: %v\n", relPath, err)
			continue
		}
		if generated {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "generated"
			result.Files = append(result.Files, file)
			result.GeneratedCount++
			result.TotalFiles++
			continue
		}

		result.Files = append(result.Files, file)
		result.TotalFiles++

		switch file.Class {
		case types.ClassSource:
			result.SourceCount++
		case types.ClassTest:
			result.TestCount++
		case types.ClassWorker:
			result.WorkerCount++
		}
	}
}

// statInode returns the (device, inode) pair for path, if the platform
// exposes one.
func statInode(path string) (inodeKey, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return inodeKey{}, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return inodeKey{}, false
	}
	return inodeKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
