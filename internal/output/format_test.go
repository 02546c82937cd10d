package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dylan-gluck/cognee-agent/internal/extract"
	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleCatalog() *extract.Catalog {
	return &extract.Catalog{
		ID:       "abc-123",
		Name:     "src/app.ts",
		FilePath: "/repo/src/app.ts",
		Language: parser.TypeScript,
		Mode:     extract.ModeDetailed,
		Functions: []extract.FunctionRecord{
			{Name: "main", IsExported: true},
		},
	}
}

func TestRenderCatalogJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCatalog(&buf, FormatJSON, sampleCatalog()); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["name"] != "src/app.ts" {
		t.Errorf("name = %v", decoded["name"])
	}
	if _, ok := decoded["source_code"]; ok {
		t.Error("detailed catalog should omit empty source_code")
	}
}

func TestRenderCatalogYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCatalog(&buf, FormatYAML, sampleCatalog()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: src/app.ts") {
		t.Errorf("missing name line:\n%s", out)
	}
	if !strings.Contains(out, "functions:") {
		t.Errorf("missing functions section:\n%s", out)
	}
}

func TestRenderCatalogsYAMLDocuments(t *testing.T) {
	var buf bytes.Buffer
	cats := []*extract.Catalog{sampleCatalog(), sampleCatalog()}
	if err := RenderCatalogs(&buf, FormatYAML, cats); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Count(buf.String(), "---") != 2 {
		t.Errorf("expected one document marker per catalog:\n%s", buf.String())
	}
}

func TestRenderCatalogsJSONArray(t *testing.T) {
	var buf bytes.Buffer
	cats := []*extract.Catalog{sampleCatalog(), sampleCatalog()}
	if err := RenderCatalogs(&buf, FormatJSON, cats); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("got %d elements", len(decoded))
	}
}
