package types

import (
	"testing"
)

func TestFileClassString(t *testing.T) {
	tests := []struct {
		fc   FileClass
		want string
	}{
		{ClassSource, "source"},
		{ClassTest, "test"},
		{ClassWorker, "worker"},
		{ClassExcluded, "excluded"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.fc.String()
			if got != tt.want {
				t.Errorf("FileClass(%d).String() = %q, want %q", tt.fc, got, tt.want)
			}
		})
	}
}

func TestEntityKindString(t *testing.T) {
	tests := []struct {
		k    EntityKind
		want string
	}{
		{KindClass, "class"},
		{KindComponent, "component"},
		{KindService, "service"},
		{KindDirective, "directive"},
		{KindPipe, "pipe"},
		{KindEnum, "enum"},
		{KindType, "type"},
		{KindInterface, "interface"},
		{KindFunction, "function"},
		{KindConst, "const"},
		{KindWorker, "worker"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("EntityKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEntityID(t *testing.T) {
	got := NewEntityID(FileID("libs/user/src/user.service.ts"), "UserService")
	want := EntityID("libs/user/src/user.service.ts#UserService")
	if got != want {
		t.Errorf("NewEntityID() = %q, want %q", got, want)
	}
}

func TestSortEntities(t *testing.T) {
	entities := []EntityRecord{
		{Name: "Zeta", File: "b.ts"},
		{Name: "Alpha", File: "b.ts"},
		{Name: "Alpha", File: "a.ts"},
	}
	SortEntities(entities)

	want := []string{"a.ts", "b.ts", "b.ts"}
	for i, w := range want {
		if string(entities[i].File) != w {
			t.Errorf("entities[%d].File = %q, want %q", i, entities[i].File, w)
		}
	}
	if entities[0].Name != "Alpha" || entities[2].Name != "Zeta" {
		t.Errorf("entities not sorted by name within equal? got %+v", entities)
	}
}

func TestParseEntityKinds(t *testing.T) {
	kinds, unknown := ParseEntityKinds("service, component,enum")
	if len(unknown) != 0 {
		t.Fatalf("unknown = %v, want none", unknown)
	}
	want := []EntityKind{KindService, KindComponent, KindEnum}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}

	_, unknown = ParseEntityKinds("service,widget")
	if len(unknown) != 1 || unknown[0] != "widget" {
		t.Errorf("unknown = %v, want [widget]", unknown)
	}
}

func TestExitError(t *testing.T) {
	var _ error = &ExitError{}

	ee := &ExitError{Code: 3, Message: "parse failed for 12 of 40 files"}
	if ee.Error() != ee.Message {
		t.Errorf("ExitError.Error() = %q, want %q", ee.Error(), ee.Message)
	}
}
