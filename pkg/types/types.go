// Package types holds the data model shared across nxgraph's packages:
// the file classification scheme, entity/import records, and the alias
// manifest read from the workspace's tsconfig.
package types

import (
	"sort"
	"strings"
)

// FileClass categorizes a discovered source file.
type FileClass int

const (
	ClassSource   FileClass = iota // regular .ts source file
	ClassTest                      // *.spec.ts or *.test.ts
	ClassWorker                    // *.worker.ts
	ClassExcluded                  // gitignored, generated, .d.ts, or hidden/_-prefixed
)

// String returns the human-readable name for a FileClass.
func (fc FileClass) String() string {
	switch fc {
	case ClassSource:
		return "source"
	case ClassTest:
		return "test"
	case ClassWorker:
		return "worker"
	case ClassExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// FileID is a stable identifier for a source file: its canonical,
// slash-normalized path relative to the workspace root.
type FileID string

// DiscoveredFile represents a file found during workspace scanning.
type DiscoveredFile struct {
	Path          string    // absolute path
	RelPath       FileID    // workspace-relative path
	Class         FileClass // classification
	ExcludeReason string    // why excluded (empty if not excluded)
}

// ScanResult holds the output of the Workspace Loader.
type ScanResult struct {
	RootDir        string
	TotalFiles     int
	SourceCount    int
	TestCount      int
	WorkerCount    int
	GitignoreCount int
	GeneratedCount int
	Files          []DiscoveredFile
	Aliases        AliasManifest
}

// SourceFiles returns only the files classified as source, test, or worker
// (the set the Parser/Extractor should read).
func (r *ScanResult) SourceFiles() []DiscoveredFile {
	out := make([]DiscoveredFile, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Class != ClassExcluded {
			out = append(out, f)
		}
	}
	return out
}

// EntityKind is a closed tag identifying the syntactic/decorator-derived
// category of a top-level declaration.
type EntityKind int

const (
	KindClass EntityKind = iota
	KindComponent
	KindService
	KindDirective
	KindPipe
	KindEnum
	KindType
	KindInterface
	KindFunction
	KindConst
	KindWorker
)

// String returns the lower-case kind name used in tab-separated output.
func (k EntityKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindComponent:
		return "component"
	case KindService:
		return "service"
	case KindDirective:
		return "directive"
	case KindPipe:
		return "pipe"
	case KindEnum:
		return "enum"
	case KindType:
		return "type"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	case KindConst:
		return "const"
	case KindWorker:
		return "worker"
	default:
		return "unknown"
	}
}

// ParseEntityKinds parses a comma-separated kind list, the value format
// of the --entity-type flag. Unrecognized names are returned separately.
func ParseEntityKinds(s string) (kinds []EntityKind, unknown []string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		matched := false
		for k := KindClass; k <= KindWorker; k++ {
			if k.String() == part {
				kinds = append(kinds, k)
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, part)
		}
	}
	return kinds, unknown
}

// EntityID uniquely identifies an EntityRecord: "<file>#<name>".
type EntityID string

// NewEntityID builds the composite identifier for a (file, name) pair.
func NewEntityID(file FileID, name string) EntityID {
	return EntityID(string(file) + "#" + name)
}

// EntityRecord is a single top-level declaration. Non-exported ones are
// kept per file (Exported false) but never become graph nodes or query
// rows.
type EntityRecord struct {
	ID       EntityID
	Name     string
	Kind     EntityKind
	File     FileID
	Exported bool
	Line     int // 1-based line of the declaration, for diagnostics
}

// ImportBinding is one named, default, or namespace binding of an import.
type ImportBinding struct {
	ImportedName string // name as declared in the source module ("default" for default imports)
	LocalName    string // name bound in the importing file
	IsDefault    bool
	IsNamespace  bool
}

// ImportRecord is one import statement.
type ImportRecord struct {
	InFile       FileID
	Specifier    string
	Bindings     []ImportBinding
	TypeOnly     bool
	ResolvedFile FileID // empty until the Resolver fills it in; still empty if external
}

// ReExportBinding is one name forwarded by an `export { ... } from`
// statement.
type ReExportBinding struct {
	ImportedName string // name in the source module
	ExportedName string // name this file exposes it under
}

// ReExportRecord is one re-export statement, the building block of barrel
// files. Exactly one of Bindings, All, or NamespaceAs describes its shape.
type ReExportRecord struct {
	InFile       FileID
	Specifier    string            // empty for bare `export { A, B }`
	Bindings     []ReExportBinding // named form
	All          bool              // export * from '...'
	NamespaceAs  string            // export * as ns from '...'
	ResolvedFile FileID            // empty until resolved; still empty if external
}

// AliasEntry is one compilerOptions.paths entry, in manifest declaration
// order.
type AliasEntry struct {
	Pattern string   // e.g. "@app/user/*" or "@app/config" (no wildcard)
	Targets []string // e.g. ["libs/user/src/*"], relative to the tsconfig's baseUrl
}

// AliasManifest holds the ordered set of path-alias patterns read from the
// workspace's tsconfig.base.json (or tsconfig.json when that is absent).
type AliasManifest struct {
	BaseURL string // directory patterns are resolved relative to, workspace-relative
	Entries []AliasEntry
}

// SortEntities orders entities deterministically: by name, then by file.
// Every entity-listing command emits rows in this order.
func SortEntities(entities []EntityRecord) {
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Name != entities[j].Name {
			return entities[i].Name < entities[j].Name
		}
		return entities[i].File < entities[j].File
	})
}
