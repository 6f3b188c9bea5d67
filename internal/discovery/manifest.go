package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// manifestCandidates are the tsconfig files probed at the workspace root,
// in order. Nx puts path aliases in tsconfig.base.json; plain Angular
// workspaces keep them in tsconfig.json.
var manifestCandidates = []string{"tsconfig.base.json", "tsconfig.json"}

// LoadAliasManifest reads compilerOptions.paths from the workspace tsconfig.
// A workspace without any tsconfig yields an empty manifest, not an error:
// relative imports still resolve. An unreadable or malformed tsconfig is a
// WorkspaceError.
func LoadAliasManifest(rootDir string) (*types.AliasManifest, error) {
	var path string
	for _, name := range manifestCandidates {
		candidate := filepath.Join(rootDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			path = candidate
			break
		}
	}
	if path == "" {
		return &types.AliasManifest{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.WorkspaceError{Message: fmt.Sprintf("read alias manifest %s: %v", path, err)}
	}

	manifest, err := parseAliasManifest(data)
	if err != nil {
		return nil, &types.WorkspaceError{Message: fmt.Sprintf("parse alias manifest %s: %v", path, err)}
	}
	return manifest, nil
}

// parseAliasManifest extracts baseUrl and the ordered paths entries from
// tsconfig JSON. tsconfig files conventionally allow comments, so they are
// stripped first.
func parseAliasManifest(data []byte) (*types.AliasManifest, error) {
	data = stripJSONComments(data)

	var cfg struct {
		CompilerOptions struct {
			BaseURL string          `json:"baseUrl"`
			Paths   json.RawMessage `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	manifest := &types.AliasManifest{BaseURL: filepath.ToSlash(filepath.Clean(cfg.CompilerOptions.BaseURL))}
	if manifest.BaseURL == "" || manifest.BaseURL == "." {
		manifest.BaseURL = ""
	}
	if len(cfg.CompilerOptions.Paths) == 0 {
		return manifest, nil
	}

	// encoding/json maps do not preserve key order, and declaration order
	// breaks alias-match ties, so the paths object is walked token by token.
	dec := json.NewDecoder(bytes.NewReader(cfg.CompilerOptions.Paths))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("compilerOptions.paths is not an object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		pattern, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("compilerOptions.paths has a non-string key")
		}
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return nil, fmt.Errorf("alias %q: %w", pattern, err)
		}
		manifest.Entries = append(manifest.Entries, types.AliasEntry{
			Pattern: pattern,
			Targets: targets,
		})
	}

	return manifest, nil
}

// stripJSONComments removes // and /* */ comments from JSONC input,
// leaving string literals untouched.
func stripJSONComments(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out.WriteByte(c)
			if c == '\\' && i+1 < len(data) {
				i++
				out.WriteByte(data[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out.WriteByte('\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++ // skip the trailing '/'
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
