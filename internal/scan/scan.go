// Package scan discovers TypeScript source files under a repository root
// and drives parallel catalog extraction over them.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

// Scanner walks a directory tree and selects extractable files.
type Scanner struct {
	exclude   []compiledPattern
	includeJS bool
}

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// NewScanner compiles the exclude patterns. Patterns match against
// slash-separated paths relative to the scan root; ** crosses directory
// boundaries.
func NewScanner(excludePatterns []string, includeJS bool) (*Scanner, error) {
	s := &Scanner{includeJS: includeJS}
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		s.exclude = append(s.exclude, compiledPattern{pattern: pattern, glob: g})
	}
	return s, nil
}

// Discover walks root and returns the absolute paths of all extractable
// files, sorted by the walk order. Directories whose relative path matches
// an exclude pattern are skipped entirely.
func (s *Scanner) Discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if s.excluded(rel) || s.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excluded(rel) {
			return nil
		}
		if !s.extractable(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// excluded reports whether a relative path matches any exclude pattern.
// A pattern also excludes everything under a directory it names.
func (s *Scanner) excluded(rel string) bool {
	for _, p := range s.exclude {
		if p.glob.Match(rel) {
			return true
		}
		// "dist/**" style patterns should also skip the dist directory
		// itself so the walk can prune it.
		if trimmed, ok := strings.CutSuffix(p.pattern, "/**"); ok {
			if g, err := glob.Compile(trimmed, '/'); err == nil && g.Match(strings.TrimSuffix(rel, "/")) {
				return true
			}
		}
	}
	return false
}

func (s *Scanner) extractable(path string) bool {
	lang := parser.LanguageFromExtension(filepath.Ext(path))
	if lang == "" {
		return false
	}
	if lang == parser.JavaScript && !s.includeJS {
		return false
	}
	return true
}
