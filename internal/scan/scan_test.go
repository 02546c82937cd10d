package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dylan-gluck/cognee-agent/internal/extract"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscoverFiltersExtensions(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.ts":    "const a = 1;",
		"src/view.tsx":  "const v = 1;",
		"src/lib.js":    "const j = 1;",
		"README.md":     "# readme",
		"src/data.json": "{}",
	})

	s, err := NewScanner(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	files, err := s.Discover(root)
	if err != nil {
		t.Fatal(err)
	}

	got := relPaths(t, root, files)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestDiscoverIncludeJS(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "const a = 1;",
		"b.js": "const b = 1;",
	})

	s, err := NewScanner(nil, true)
	if err != nil {
		t.Fatal(err)
	}
	files, err := s.Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %v", relPaths(t, root, files))
	}
}

func TestDiscoverExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.ts":                "const a = 1;",
		"src/app.test.ts":           "const t = 1;",
		"node_modules/pkg/index.ts": "const n = 1;",
		"dist/out.ts":               "const d = 1;",
	})

	s, err := NewScanner([]string{"node_modules/**", "dist/**", "**/*.test.ts"}, false)
	if err != nil {
		t.Fatal(err)
	}
	files, err := s.Discover(root)
	if err != nil {
		t.Fatal(err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "src/app.ts" {
		t.Fatalf("got %v", got)
	}
}

func TestDiscoverSkipsHiddenDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts":     "const a = 1;",
		".tscat/b.ts":  "const b = 1;",
		".git/hook.ts": "const c = 1;",
	})

	s, err := NewScanner(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	files, err := s.Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := relPaths(t, root, files); len(got) != 1 || got[0] != "src/a.ts" {
		t.Fatalf("got %v", got)
	}
}

func TestNewScannerBadPattern(t *testing.T) {
	_, err := NewScanner([]string{"["}, false)
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestExtractAll(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "export function a() {}",
		"b.ts": "export function b() {}",
		"c.ts": "export function c() {}",
	})

	s, err := NewScanner(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	files, err := s.Discover(root)
	if err != nil {
		t.Fatal(err)
	}

	results := ExtractAll(root, files, extract.DefaultOptions(), 2)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("extract %s: %v", r.FilePath, r.Err)
		}
		if r.Catalog == nil || len(r.Catalog.Functions) != 1 {
			t.Errorf("catalog for %s incomplete", r.FilePath)
		}
		if i > 0 && results[i-1].FilePath > r.FilePath {
			t.Error("results must be sorted by path")
		}
	}
}
