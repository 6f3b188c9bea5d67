package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nx-tools/nxgraph/internal/graph"
	"github.com/nx-tools/nxgraph/internal/parser"
	"github.com/nx-tools/nxgraph/internal/resolve"
	"github.com/nx-tools/nxgraph/pkg/types"
)

func smallGraph(t *testing.T) *graph.Graph {
	t.Helper()
	a := &parser.FileExtract{
		File: "libs/a.ts",
		Entities: []types.EntityRecord{{
			ID: types.NewEntityID("libs/a.ts", "A"), Name: "A",
			Kind: types.KindClass, File: "libs/a.ts", Exported: true,
		}},
		Imports: []types.ImportRecord{{
			InFile: "libs/a.ts", Specifier: "./b",
			Bindings: []types.ImportBinding{{ImportedName: "B", LocalName: "B"}},
		}},
	}
	b := &parser.FileExtract{
		File: "libs/b.ts",
		Entities: []types.EntityRecord{{
			ID: types.NewEntityID("libs/b.ts", "B"), Name: "B",
			Kind: types.KindService, File: "libs/b.ts", Exported: true,
		}},
	}
	extracts := []*parser.FileExtract{a, b}
	return graph.Build(resolve.New(types.AliasManifest{}, extracts), extracts)
}

func TestWriteGraphJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraphJSON(&buf, smallGraph(t)); err != nil {
		t.Fatalf("WriteGraphJSON() error: %v", err)
	}

	var decoded struct {
		Nodes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Kind string `json:"kind"`
			File string `json:"file"`
		} `json:"nodes"`
		Links []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"links"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(decoded.Nodes))
	}
	if decoded.Nodes[0].Name != "A" || decoded.Nodes[0].Kind != "class" {
		t.Errorf("node[0] = %+v", decoded.Nodes[0])
	}
	if len(decoded.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(decoded.Links))
	}
	if decoded.Links[0].Source != "libs/a.ts#A" || decoded.Links[0].Target != "libs/b.ts#B" {
		t.Errorf("link = %+v", decoded.Links[0])
	}
}

func TestBuildD3GraphEmpty(t *testing.T) {
	extracts := []*parser.FileExtract{}
	g := graph.Build(resolve.New(types.AliasManifest{}, extracts), extracts)

	d3 := BuildD3Graph(g)
	if d3.Nodes == nil || d3.Links == nil {
		t.Error("empty graph should marshal as [] not null")
	}
}
