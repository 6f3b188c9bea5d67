package parser

import (
	"testing"

	"github.com/nx-tools/nxgraph/pkg/types"
)

func extractSource(t *testing.T, file types.FileID, class types.FileClass, src string) *FileExtract {
	t.Helper()
	p, err := NewTreeSitterParser()
	if err != nil {
		t.Fatalf("NewTreeSitterParser() error: %v", err)
	}
	defer p.Close()

	tree, err := p.ParseFile([]byte(src))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	defer tree.Close()

	return Extract(file, class, []byte(src), tree)
}

func findEntity(fe *FileExtract, name string) *types.EntityRecord {
	for i := range fe.Entities {
		if fe.Entities[i].Name == name {
			return &fe.Entities[i]
		}
	}
	return nil
}

func TestExtractDecoratedClasses(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want types.EntityKind
	}{
		{"injectable is service", "@Injectable({ providedIn: 'root' })\nexport class UserService {}", types.KindService},
		{"component", "@Component({ selector: 'x' })\nexport class AppComponent {}", types.KindComponent},
		{"directive", "@Directive({ selector: '[x]' })\nexport class FocusDirective {}", types.KindDirective},
		{"pipe", "@Pipe({ name: 'x' })\nexport class DatePipe {}", types.KindPipe},
		{"plain class", "export class Widget {}", types.KindClass},
		{"unknown decorator stays class", "@Sealed()\nexport class Frozen {}", types.KindClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := extractSource(t, "libs/x/src/x.ts", types.ClassSource, tt.src)
			if len(fe.Entities) != 1 {
				t.Fatalf("entities = %d, want 1", len(fe.Entities))
			}
			e := fe.Entities[0]
			if e.Kind != tt.want {
				t.Errorf("kind = %s, want %s", e.Kind, tt.want)
			}
			if !e.Exported {
				t.Error("entity should be exported")
			}
		})
	}
}

func TestExtractDeclarationKinds(t *testing.T) {
	src := `export interface User { id: string; }
export type UserId = string;
export enum Role { Admin, Member }
export function helperFn(): void {}
export const A = 1, B = 2;
class Hidden {}
`
	fe := extractSource(t, "libs/x/src/x.ts", types.ClassSource, src)

	wantKinds := map[string]types.EntityKind{
		"User":     types.KindInterface,
		"UserId":   types.KindType,
		"Role":     types.KindEnum,
		"helperFn": types.KindFunction,
		"A":        types.KindConst,
		"B":        types.KindConst,
	}
	for name, kind := range wantKinds {
		e := findEntity(fe, name)
		if e == nil {
			t.Errorf("entity %s not extracted", name)
			continue
		}
		if e.Kind != kind {
			t.Errorf("%s kind = %s, want %s", name, e.Kind, kind)
		}
		if !e.Exported {
			t.Errorf("%s should be exported", name)
		}
	}

	hidden := findEntity(fe, "Hidden")
	if hidden == nil {
		t.Fatal("non-exported declaration should still be recorded")
	}
	if hidden.Exported {
		t.Error("Hidden should not be exported")
	}
}

func TestExtractBareExportClause(t *testing.T) {
	src := `const token = 'x';
class Provider {}
export { token, Provider as DefaultProvider };
`
	fe := extractSource(t, "libs/x/src/x.ts", types.ClassSource, src)

	if e := findEntity(fe, "token"); e == nil || !e.Exported {
		t.Error("token should be upgraded to exported")
	}
	if e := findEntity(fe, "Provider"); e == nil || !e.Exported {
		t.Error("Provider should be upgraded to exported")
	}

	// The alias needs a sourceless re-export record so importers of
	// DefaultProvider can be resolved back to Provider.
	found := false
	for _, re := range fe.ReExports {
		if re.Specifier != "" {
			continue
		}
		for _, b := range re.Bindings {
			if b.ImportedName == "Provider" && b.ExportedName == "DefaultProvider" {
				found = true
			}
		}
	}
	if !found {
		t.Error("aliased bare export should produce a sourceless re-export record")
	}
}

func TestExtractImportForms(t *testing.T) {
	src := `import Default from './a';
import { One, Two as Alias } from './b';
import * as ns from './c';
import './polyfill';
import type { Shape } from './d';
`
	fe := extractSource(t, "apps/web/src/main.ts", types.ClassSource, src)

	if len(fe.Imports) != 5 {
		t.Fatalf("imports = %d, want 5", len(fe.Imports))
	}

	def := fe.Imports[0]
	if len(def.Bindings) != 1 || !def.Bindings[0].IsDefault || def.Bindings[0].LocalName != "Default" {
		t.Errorf("default import bindings = %+v", def.Bindings)
	}

	named := fe.Imports[1]
	if len(named.Bindings) != 2 {
		t.Fatalf("named import bindings = %d, want 2", len(named.Bindings))
	}
	if named.Bindings[0].ImportedName != "One" || named.Bindings[0].LocalName != "One" {
		t.Errorf("binding[0] = %+v", named.Bindings[0])
	}
	if named.Bindings[1].ImportedName != "Two" || named.Bindings[1].LocalName != "Alias" {
		t.Errorf("binding[1] = %+v", named.Bindings[1])
	}

	nsImp := fe.Imports[2]
	if len(nsImp.Bindings) != 1 || !nsImp.Bindings[0].IsNamespace || nsImp.Bindings[0].LocalName != "ns" {
		t.Errorf("namespace import bindings = %+v", nsImp.Bindings)
	}

	side := fe.Imports[3]
	if len(side.Bindings) != 0 {
		t.Errorf("side-effect import should have no bindings, got %+v", side.Bindings)
	}
	if side.Specifier != "./polyfill" {
		t.Errorf("side-effect specifier = %q", side.Specifier)
	}

	typed := fe.Imports[4]
	if !typed.TypeOnly {
		t.Error("import type should be flagged TypeOnly")
	}
}

func TestExtractReExports(t *testing.T) {
	src := `export { UserService } from './user.service';
export { Widget as UiWidget } from './widget';
export * from './user.model';
export * as models from './models';
`
	fe := extractSource(t, "libs/user/src/index.ts", types.ClassSource, src)

	if len(fe.ReExports) != 4 {
		t.Fatalf("re-exports = %d, want 4", len(fe.ReExports))
	}
	if fe.ReExports[0].Bindings[0].ImportedName != "UserService" {
		t.Errorf("re-export[0] = %+v", fe.ReExports[0])
	}
	if b := fe.ReExports[1].Bindings[0]; b.ImportedName != "Widget" || b.ExportedName != "UiWidget" {
		t.Errorf("re-export[1] binding = %+v", b)
	}
	if !fe.ReExports[2].All {
		t.Error("export * should set All")
	}
	if fe.ReExports[3].NamespaceAs != "models" {
		t.Errorf("namespace re-export alias = %q, want models", fe.ReExports[3].NamespaceAs)
	}
}

func TestExtractDefaultExports(t *testing.T) {
	t.Run("named class", func(t *testing.T) {
		fe := extractSource(t, "libs/x/src/thing.ts", types.ClassSource, "export default class Thing {}")
		e := findEntity(fe, "Thing")
		if e == nil || !e.Exported {
			t.Fatal("named default class should be an exported entity")
		}
		if fe.Default != e.ID {
			t.Errorf("Default = %q, want %q", fe.Default, e.ID)
		}
	})

	t.Run("anonymous class uses basename", func(t *testing.T) {
		fe := extractSource(t, "libs/x/src/app.component.ts", types.ClassSource, "export default class {}")
		e := findEntity(fe, "appComponent")
		if e == nil {
			t.Fatalf("anonymous default should use camel-cased basename; entities = %+v", fe.Entities)
		}
		if fe.Default != e.ID {
			t.Errorf("Default = %q, want %q", fe.Default, e.ID)
		}
	})

	t.Run("identifier expression", func(t *testing.T) {
		fe := extractSource(t, "libs/x/src/x.ts", types.ClassSource, "const conf = {};\nexport default conf;")
		e := findEntity(fe, "conf")
		if e == nil || !e.Exported {
			t.Fatal("export default <identifier> should mark the declaration exported")
		}
		if fe.Default != e.ID {
			t.Errorf("Default = %q, want %q", fe.Default, e.ID)
		}
	})
}

func TestExtractWorkerFile(t *testing.T) {
	fe := extractSource(t, "apps/web/src/upload.worker.ts", types.ClassWorker, "export class UploadWorker {}")
	e := findEntity(fe, "UploadWorker")
	if e == nil {
		t.Fatal("worker entity not extracted")
	}
	if e.Kind != types.KindWorker {
		t.Errorf("kind = %s, want worker", e.Kind)
	}
}

func TestExtractIgnoresNestedDeclarations(t *testing.T) {
	src := `export function outer(): void {
  class Inner {}
  const nested = 1;
}
`
	fe := extractSource(t, "libs/x/src/x.ts", types.ClassSource, src)
	if len(fe.Entities) != 1 {
		t.Fatalf("entities = %d, want 1 (nested declarations ignored)", len(fe.Entities))
	}
	if fe.Entities[0].Name != "outer" {
		t.Errorf("entity = %q, want outer", fe.Entities[0].Name)
	}
}

func TestCamelCaseBasename(t *testing.T) {
	tests := []struct {
		file types.FileID
		want string
	}{
		{"apps/web/src/app.component.ts", "appComponent"},
		{"libs/x/src/my-widget.ts", "myWidget"},
		{"libs/x/src/data_store.ts", "dataStore"},
		{"index.ts", "index"},
	}
	for _, tt := range tests {
		if got := camelCaseBasename(tt.file); got != tt.want {
			t.Errorf("camelCaseBasename(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
