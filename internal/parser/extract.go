package parser

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// FileExtract is the per-file output of the Parser/Extractor stage: every
// top-level declaration, every import, and every re-export statement.
type FileExtract struct {
	File      types.FileID
	Class     types.FileClass
	Entities  []types.EntityRecord
	Imports   []types.ImportRecord
	ReExports []types.ReExportRecord
	Default   types.EntityID // entity a default import of this file resolves to
	Bytes     int64          // source size, for the verbose parse summary
	Err       error          // set when the file could not be read or parsed
}

// decoratorKinds maps Angular decorator names to entity kinds.
var decoratorKinds = map[string]types.EntityKind{
	"Component":  types.KindComponent,
	"Injectable": types.KindService,
	"Directive":  types.KindDirective,
	"Pipe":       types.KindPipe,
}

// extractor accumulates state for one file's AST walk.
type extractor struct {
	out            *FileExtract
	content        []byte
	byName         map[string]int // entity name -> index into out.Entities
	pendingDefault string         // identifier from `export default Foo;`
}

// Extract walks a parsed file and produces its FileExtract. Only direct
// children of the program node are considered: declarations inside function
// bodies and namespaces never produce entities.
func Extract(file types.FileID, class types.FileClass, content []byte, tree *tree_sitter.Tree) *FileExtract {
	ex := &extractor{
		out:     &FileExtract{File: file, Class: class},
		content: content,
		byName:  make(map[string]int),
	}

	root := tree.RootNode()
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			ex.importStatement(child)
		case "export_statement":
			ex.exportStatement(child)
		case "class_declaration", "abstract_class_declaration",
			"function_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration",
			"lexical_declaration", "variable_declaration":
			ex.declaration(child, child, false, false)
		}
	}

	if ex.pendingDefault != "" {
		if idx, ok := ex.byName[ex.pendingDefault]; ok {
			ex.out.Entities[idx].Exported = true
			ex.out.Default = ex.out.Entities[idx].ID
		}
	}

	return ex.out
}

// importStatement records one import in any of its four forms.
func (ex *extractor) importStatement(node *tree_sitter.Node) {
	rec := types.ImportRecord{InFile: ex.out.File}

	src := node.ChildByFieldName("source")
	if src == nil {
		return
	}
	rec.Specifier = stripQuotes(NodeText(src, ex.content))

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "type":
			rec.TypeOnly = true
		case "import_clause":
			ex.importClause(child, &rec)
		}
	}

	ex.out.Imports = append(ex.out.Imports, rec)
}

// importClause collects default, namespace, and named bindings.
func (ex *extractor) importClause(clause *tree_sitter.Node, rec *types.ImportRecord) {
	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			rec.Bindings = append(rec.Bindings, types.ImportBinding{
				ImportedName: "default",
				LocalName:    NodeText(child, ex.content),
				IsDefault:    true,
			})
		case "namespace_import":
			if ident := firstChildOfKind(child, "identifier"); ident != nil {
				rec.Bindings = append(rec.Bindings, types.ImportBinding{
					ImportedName: "*",
					LocalName:    NodeText(ident, ex.content),
					IsNamespace:  true,
				})
			}
		case "named_imports":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := NodeText(name, ex.content)
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = NodeText(alias, ex.content)
				}
				rec.Bindings = append(rec.Bindings, types.ImportBinding{
					ImportedName: imported,
					LocalName:    local,
				})
			}
		}
	}
}

// exportStatement handles exported declarations, re-exports, bare export
// clauses, and default exports.
func (ex *extractor) exportStatement(node *tree_sitter.Node) {
	src := node.ChildByFieldName("source")
	isDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "default" {
			isDefault = true
		}
	}

	if src != nil {
		ex.reExport(node, stripQuotes(NodeText(src, ex.content)))
		return
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		ex.declaration(node, decl, true, isDefault)
		return
	}

	if isDefault {
		ex.defaultExpression(node)
		return
	}

	// Bare `export { A, B as C }`: upgrades local declarations.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "export_clause" {
			continue
		}
		ex.bareExportClause(child)
	}
}

// reExport records `export { A, B as C } from`, `export * from`, and
// `export * as ns from` statements.
func (ex *extractor) reExport(node *tree_sitter.Node, specifier string) {
	rec := types.ReExportRecord{InFile: ex.out.File, Specifier: specifier}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "export_clause":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "export_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := NodeText(name, ex.content)
				exported := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					exported = NodeText(alias, ex.content)
				}
				rec.Bindings = append(rec.Bindings, types.ReExportBinding{
					ImportedName: imported,
					ExportedName: exported,
				})
			}
		case "*":
			rec.All = true
		case "namespace_export":
			if ident := firstChildOfKind(child, "identifier"); ident != nil {
				rec.NamespaceAs = NodeText(ident, ex.content)
			}
		}
	}

	ex.out.ReExports = append(ex.out.ReExports, rec)
}

// bareExportClause upgrades already-declared names to exported. Aliased or
// import-forwarding entries additionally become sourceless re-export
// records so the resolver can map the exported name back.
func (ex *extractor) bareExportClause(clause *tree_sitter.Node) {
	for j := uint(0); j < clause.ChildCount(); j++ {
		spec := clause.Child(j)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}
		local := NodeText(name, ex.content)
		exported := local
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = NodeText(alias, ex.content)
		}

		idx, declared := ex.byName[local]
		if declared {
			ex.out.Entities[idx].Exported = true
		}
		if !declared || exported != local {
			ex.out.ReExports = append(ex.out.ReExports, types.ReExportRecord{
				InFile:   ex.out.File,
				Bindings: []types.ReExportBinding{{ImportedName: local, ExportedName: exported}},
			})
		}
	}
}

// declaration records entities for one declaration node. decorated kinds
// are read from decorator nodes on either the export statement or the
// declaration itself.
func (ex *extractor) declaration(stmt, decl *tree_sitter.Node, exported, isDefault bool) {
	switch decl.Kind() {
	case "class_declaration", "abstract_class_declaration":
		kind := ex.decoratedKind(stmt, decl, types.KindClass)
		name := ex.declaredName(decl)
		if name == "" && isDefault {
			name = camelCaseBasename(ex.out.File)
		}
		if name == "" {
			return
		}
		ex.addEntity(name, kind, decl, exported, isDefault)

	case "function_declaration":
		name := ex.declaredName(decl)
		if name == "" && isDefault {
			name = camelCaseBasename(ex.out.File)
		}
		if name == "" {
			return
		}
		ex.addEntity(name, types.KindFunction, decl, exported, isDefault)

	case "interface_declaration":
		ex.addNamed(decl, types.KindInterface, exported, isDefault)
	case "type_alias_declaration":
		ex.addNamed(decl, types.KindType, exported, isDefault)
	case "enum_declaration":
		ex.addNamed(decl, types.KindEnum, exported, isDefault)

	case "lexical_declaration", "variable_declaration":
		// Multiple binding list: each declarator is its own entity.
		for i := uint(0); i < decl.ChildCount(); i++ {
			d := decl.Child(i)
			if d == nil || d.Kind() != "variable_declarator" {
				continue
			}
			name := d.ChildByFieldName("name")
			if name == nil || name.Kind() != "identifier" {
				continue
			}
			ex.addEntity(NodeText(name, ex.content), types.KindConst, d, exported, false)
		}
	}
}

// defaultExpression handles `export default <expr>` where the expression
// is not a declaration: an identifier defers to that declaration; a class
// or function expression becomes a class or function entity named after
// the file, and any other expression a const entity named after the file.
func (ex *extractor) defaultExpression(node *tree_sitter.Node) {
	value := node.ChildByFieldName("value")
	if value == nil {
		return
	}
	switch value.Kind() {
	case "identifier":
		ex.pendingDefault = NodeText(value, ex.content)
	case "class":
		ex.addEntity(camelCaseBasename(ex.out.File), types.KindClass, value, true, true)
	case "function_expression", "arrow_function", "generator_function":
		ex.addEntity(camelCaseBasename(ex.out.File), types.KindFunction, value, true, true)
	default:
		ex.addEntity(camelCaseBasename(ex.out.File), types.KindConst, value, true, true)
	}
}

// addNamed records an entity for a declaration with a name field.
func (ex *extractor) addNamed(decl *tree_sitter.Node, kind types.EntityKind, exported, isDefault bool) {
	name := ex.declaredName(decl)
	if name == "" {
		return
	}
	ex.addEntity(name, kind, decl, exported, isDefault)
}

func (ex *extractor) addEntity(name string, kind types.EntityKind, node *tree_sitter.Node, exported, isDefault bool) {
	// (file, name) is unique; a duplicate is a parse artifact and skipped.
	if _, dup := ex.byName[name]; dup {
		return
	}
	if ex.out.Class == types.ClassWorker {
		kind = types.KindWorker
	}
	rec := types.EntityRecord{
		ID:       types.NewEntityID(ex.out.File, name),
		Name:     name,
		Kind:     kind,
		File:     ex.out.File,
		Exported: exported,
		Line:     int(node.StartPosition().Row) + 1,
	}
	ex.byName[name] = len(ex.out.Entities)
	ex.out.Entities = append(ex.out.Entities, rec)
	if isDefault {
		ex.out.Default = rec.ID
	}
}

// declaredName returns the declaration's name field text, if any.
func (ex *extractor) declaredName(decl *tree_sitter.Node) string {
	name := decl.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return NodeText(name, ex.content)
}

// decoratedKind inspects decorator nodes preceding a class declaration.
// Decorators attach to the export statement or to the class node depending
// on grammar version, so both are checked.
func (ex *extractor) decoratedKind(stmt, decl *tree_sitter.Node, fallback types.EntityKind) types.EntityKind {
	for _, holder := range []*tree_sitter.Node{stmt, decl} {
		if holder == nil {
			continue
		}
		for i := uint(0); i < holder.ChildCount(); i++ {
			child := holder.Child(i)
			if child == nil || child.Kind() != "decorator" {
				continue
			}
			if kind, ok := decoratorKinds[decoratorName(child, ex.content)]; ok {
				return kind
			}
		}
	}
	return fallback
}

// decoratorName extracts the callee identifier from @Name or @Name(...).
func decoratorName(node *tree_sitter.Node, content []byte) string {
	text := strings.TrimPrefix(NodeText(node, content), "@")
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// firstChildOfKind returns the first direct child with the given kind.
func firstChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// stripQuotes removes surrounding quotes from a string literal.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// camelCaseBasename derives the fallback entity name for anonymous default
// exports: the file's basename with separators camel-cased
// ("app.component.ts" -> "appComponent").
func camelCaseBasename(file types.FileID) string {
	base := string(file)
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".ts")

	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0][:1]) + parts[0][1:])
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
