// Package resolve turns textual import specifiers into workspace files and
// import bindings into entity references, following Nx path aliases,
// relative paths, and barrel re-export chains.
package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/nx-tools/nxgraph/internal/parser"
	"github.com/nx-tools/nxgraph/pkg/types"
)

// maxReExportDepth caps barrel traversal. A chain deeper than this is
// marked unresolved rather than followed further.
const maxReExportDepth = 16

// Resolver resolves specifiers and bindings against one extracted
// workspace. It is built once after the parallel parse merge and is
// read-only afterward.
type Resolver struct {
	manifest types.AliasManifest
	files    map[types.FileID]*parser.FileExtract
	fileSet  map[types.FileID]bool
	entities map[types.FileID]map[string]*types.EntityRecord // exported, by name

	// Unresolved counts bindings that failed to resolve inside the
	// workspace (externals are not counted).
	Unresolved int
}

// New builds a Resolver over the extracted files and resolves every
// import and re-export specifier in place.
func New(manifest types.AliasManifest, extracts []*parser.FileExtract) *Resolver {
	r := &Resolver{
		manifest: manifest,
		files:    make(map[types.FileID]*parser.FileExtract, len(extracts)),
		fileSet:  make(map[types.FileID]bool, len(extracts)),
		entities: make(map[types.FileID]map[string]*types.EntityRecord),
	}
	for _, fe := range extracts {
		r.files[fe.File] = fe
		r.fileSet[fe.File] = true
		byName := make(map[string]*types.EntityRecord)
		for i := range fe.Entities {
			e := &fe.Entities[i]
			if e.Exported {
				byName[e.Name] = e
			}
		}
		r.entities[fe.File] = byName
	}

	for _, fe := range extracts {
		for i := range fe.Imports {
			fe.Imports[i].ResolvedFile = r.ResolveSpecifier(fe.File, fe.Imports[i].Specifier)
		}
		for i := range fe.ReExports {
			if fe.ReExports[i].Specifier != "" {
				fe.ReExports[i].ResolvedFile = r.ResolveSpecifier(fe.File, fe.ReExports[i].Specifier)
			}
		}
	}

	return r
}

// ResolveSpecifier maps an import specifier originating in `from` to a
// workspace FileID. Empty means external (or unresolvable, which is
// treated the same).
func (r *Resolver) ResolveSpecifier(from types.FileID, spec string) types.FileID {
	if spec == "" {
		return ""
	}
	if strings.HasPrefix(spec, ".") {
		joined := path.Clean(path.Join(path.Dir(string(from)), spec))
		return r.candidate(joined)
	}
	return r.resolveAlias(spec)
}

// candidate probes a path against the workspace file set, appending the
// suffix candidates in specified order: bare (already .ts), .ts, /index.ts.
func (r *Resolver) candidate(p string) types.FileID {
	if strings.HasSuffix(p, ".ts") && r.fileSet[types.FileID(p)] {
		return types.FileID(p)
	}
	if id := types.FileID(p + ".ts"); r.fileSet[id] {
		return id
	}
	if id := types.FileID(p + "/index.ts"); r.fileSet[id] {
		return id
	}
	return ""
}

// resolveAlias matches a bare specifier against the alias manifest. The
// pattern with the longest literal prefix wins; ties break by manifest
// declaration order.
func (r *Resolver) resolveAlias(spec string) types.FileID {
	bestLen := -1
	var best *types.AliasEntry
	var bestRest string

	for i := range r.manifest.Entries {
		entry := &r.manifest.Entries[i]
		if wildcard := strings.HasSuffix(entry.Pattern, "*"); wildcard {
			prefix := strings.TrimSuffix(entry.Pattern, "*")
			if strings.HasPrefix(spec, prefix) && len(prefix) > bestLen {
				bestLen = len(prefix)
				best = entry
				bestRest = spec[len(prefix):]
			}
		} else if spec == entry.Pattern && len(entry.Pattern) > bestLen {
			bestLen = len(entry.Pattern)
			best = entry
			bestRest = ""
		}
	}

	if best == nil {
		return ""
	}

	for _, target := range best.Targets {
		substituted := strings.Replace(target, "*", bestRest, 1)
		p := path.Clean(substituted)
		if r.manifest.BaseURL != "" {
			p = path.Clean(path.Join(r.manifest.BaseURL, substituted))
		}
		if id := r.candidate(p); id != "" {
			return id
		}
	}
	return ""
}

// nameKey keys the barrel-traversal visited set.
func nameKey(file types.FileID, name string) string {
	return string(file) + "\x00" + name
}

// ResolveBinding maps one import binding against its resolved file to the
// entity (or entities, for namespace imports) it refers to. nil means
// external or unresolved.
func (r *Resolver) ResolveBinding(resolved types.FileID, b types.ImportBinding) []types.EntityID {
	if resolved == "" {
		return nil
	}
	var ids []types.EntityID
	switch {
	case b.IsNamespace:
		ids = r.exportedEntities(resolved, make(map[types.FileID]bool), 0)
	case b.IsDefault:
		ids = r.resolveDefault(resolved)
	default:
		ids = r.resolveName(resolved, b.ImportedName, make(map[string]bool), 0)
	}
	if len(ids) == 0 {
		r.Unresolved++
	}
	return ids
}

// resolveName finds the entity a named binding lands on, following
// re-export chains until the declaring file is reached, a cycle is
// detected, or the depth cap is hit.
func (r *Resolver) resolveName(file types.FileID, name string, visited map[string]bool, depth int) []types.EntityID {
	if depth > maxReExportDepth || file == "" {
		return nil
	}
	key := nameKey(file, name)
	if visited[key] {
		return nil
	}
	visited[key] = true

	fe := r.files[file]
	if fe == nil {
		return nil
	}

	if e, ok := r.entities[file][name]; ok {
		return []types.EntityID{e.ID}
	}

	for i := range fe.ReExports {
		re := &fe.ReExports[i]
		for _, b := range re.Bindings {
			if b.ExportedName != name {
				continue
			}
			if re.Specifier == "" {
				if ids := r.resolveLocal(fe, b.ImportedName, visited, depth+1); len(ids) > 0 {
					return ids
				}
				continue
			}
			if ids := r.resolveName(re.ResolvedFile, b.ImportedName, visited, depth+1); len(ids) > 0 {
				return ids
			}
		}
		if re.NamespaceAs == name && re.ResolvedFile != "" {
			return r.exportedEntities(re.ResolvedFile, make(map[types.FileID]bool), depth+1)
		}
	}

	// export * fan-out: first chain that declares the name wins.
	for i := range fe.ReExports {
		re := &fe.ReExports[i]
		if !re.All || re.ResolvedFile == "" {
			continue
		}
		if ids := r.resolveName(re.ResolvedFile, name, visited, depth+1); len(ids) > 0 {
			return ids
		}
	}

	return nil
}

// resolveLocal handles sourceless re-exports: the forwarded name is either
// a local declaration or something this file imported.
func (r *Resolver) resolveLocal(fe *parser.FileExtract, localName string, visited map[string]bool, depth int) []types.EntityID {
	for i := range fe.Entities {
		if fe.Entities[i].Name == localName {
			return []types.EntityID{fe.Entities[i].ID}
		}
	}
	for i := range fe.Imports {
		imp := &fe.Imports[i]
		if imp.ResolvedFile == "" {
			continue
		}
		for _, b := range imp.Bindings {
			if b.LocalName != localName {
				continue
			}
			if b.IsDefault {
				return r.resolveDefault(imp.ResolvedFile)
			}
			if b.IsNamespace {
				return r.exportedEntities(imp.ResolvedFile, make(map[types.FileID]bool), depth)
			}
			return r.resolveName(imp.ResolvedFile, b.ImportedName, visited, depth)
		}
	}
	return nil
}

// resolveDefault maps a default import: the file's default entity if
// present, otherwise its sole exported entity, otherwise external.
func (r *Resolver) resolveDefault(file types.FileID) []types.EntityID {
	fe := r.files[file]
	if fe == nil {
		return nil
	}
	if fe.Default != "" {
		return []types.EntityID{fe.Default}
	}
	byName := r.entities[file]
	if len(byName) == 1 {
		for _, e := range byName {
			return []types.EntityID{e.ID}
		}
	}
	return nil
}

// exportedEntities returns every entity a file exposes, including ones
// forwarded through re-exports. Used for namespace imports and export-*
// expansion.
func (r *Resolver) exportedEntities(file types.FileID, visited map[types.FileID]bool, depth int) []types.EntityID {
	if depth > maxReExportDepth || file == "" || visited[file] {
		return nil
	}
	visited[file] = true

	fe := r.files[file]
	if fe == nil {
		return nil
	}

	seen := make(map[types.EntityID]bool)
	var ids []types.EntityID
	add := func(list []types.EntityID) {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	for i := range fe.Entities {
		if fe.Entities[i].Exported {
			add([]types.EntityID{fe.Entities[i].ID})
		}
	}
	for i := range fe.ReExports {
		re := &fe.ReExports[i]
		switch {
		case re.All || re.NamespaceAs != "":
			add(r.exportedEntities(re.ResolvedFile, visited, depth+1))
		default:
			for _, b := range re.Bindings {
				if re.Specifier == "" {
					add(r.resolveLocal(fe, b.ImportedName, make(map[string]bool), depth+1))
				} else {
					add(r.resolveName(re.ResolvedFile, b.ImportedName, make(map[string]bool), depth+1))
				}
			}
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entities returns the exported entity catalog in deterministic order:
// file, then declaration position.
func (r *Resolver) Entities() []types.EntityRecord {
	files := make([]types.FileID, 0, len(r.files))
	for id := range r.files {
		files = append(files, id)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	var out []types.EntityRecord
	for _, id := range files {
		for _, e := range r.files[id].Entities {
			if e.Exported {
				out = append(out, e)
			}
		}
	}
	return out
}
