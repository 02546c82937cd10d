package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dylan-gluck/cognee-agent/internal/extract"
	"github.com/dylan-gluck/cognee-agent/internal/store"
)

// Render writes any value to w in the given format. JSON output is
// indented; YAML uses two-space indentation.
func Render(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %q", f)
	}
}

// RenderCatalog writes one catalog to w.
func RenderCatalog(w io.Writer, f Format, cat *extract.Catalog) error {
	return Render(w, f, cat)
}

// RenderCatalogs writes a sequence of catalogs to w. In YAML each catalog
// becomes its own document; in JSON the sequence is one array.
func RenderCatalogs(w io.Writer, f Format, cats []*extract.Catalog) error {
	if f == FormatJSON {
		return Render(w, f, cats)
	}
	for _, cat := range cats {
		if _, err := fmt.Fprintln(w, "---"); err != nil {
			return err
		}
		if err := Render(w, f, cat); err != nil {
			return err
		}
	}
	return nil
}

// RenderFileList writes a catalog file listing to w.
func RenderFileList(w io.Writer, f Format, entries []store.FileEntry) error {
	return Render(w, f, entries)
}
