package extract

import (
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

// Mode selects what an extraction call populates.
type Mode string

const (
	// ModeRaw captures file identity and the complete source text, no records.
	ModeRaw Mode = "raw"
	// ModeDetailed captures the record sequences and omits the source text.
	ModeDetailed Mode = "detailed"
)

// ParseMode parses a mode string. Accepts "raw" and "detailed".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "raw":
		return ModeRaw, nil
	case "detailed":
		return ModeDetailed, nil
	default:
		return "", fmt.Errorf("invalid mode: %q (expected raw or detailed)", s)
	}
}

// Options control a single extraction call.
type Options struct {
	// Mode selects raw or detailed extraction.
	Mode Mode
	// ReexportImports controls whether a re-export (export { x } from 'y')
	// also synthesizes an ImportRecord for the source module, so downstream
	// dependency graphs see the module edge. On by default.
	ReexportImports bool
}

// DefaultOptions returns the default extraction options: detailed mode
// with re-export import synthesis enabled.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeDetailed,
		ReexportImports: true,
	}
}

// Extractor classifies one parsed file into a catalog. An Extractor is
// exclusively owned by the extraction call that created it and is not
// reused; concurrent extractions of different files share nothing.
type Extractor struct {
	result   *parser.ParseResult
	filePath string
	opts     Options
	catalog  *Catalog
}

// Extract parses the file at filePath and classifies it into a catalog.
// The language variant is chosen from the file extension (.tsx parses
// with the JSX-flavored grammar). Extraction is synchronous and
// re-entrant; callers issue concurrent Extract calls across files with
// whatever degree of parallelism they choose.
//
// A file that cannot be read or has an unsupported extension returns an
// error and no catalog. A file that parses with syntax errors still
// returns a catalog covering every valid declaration, with diagnostics
// for the error subtrees.
func Extract(repoRoot, filePath string, opts Options) (*Catalog, error) {
	lang := parser.LanguageFromExtension(filepath.Ext(filePath))
	if lang == "" {
		return nil, &parser.UnsupportedLanguageError{Language: filepath.Ext(filePath)}
	}

	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.ParseFile(filePath)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return fromResult(repoRoot, result, opts)
}

// ExtractSource classifies in-memory source text as if it were the file at
// filePath. The tree is parsed and discarded within the call.
func ExtractSource(repoRoot, filePath string, source []byte, lang parser.Language, opts Options) (*Catalog, error) {
	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.Parse(source)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	result.FilePath = filePath
	return fromResult(repoRoot, result, opts)
}

// fromResult builds a catalog from a parse result. The catalog accumulates
// through the walk under exclusive ownership and is returned frozen; it
// holds no references into the tree.
func fromResult(repoRoot string, result *parser.ParseResult, opts Options) (*Catalog, error) {
	if opts.Mode == "" {
		opts.Mode = ModeDetailed
	}

	catalog := &Catalog{
		ID:       FileID(result.FilePath),
		Name:     relName(repoRoot, result.FilePath),
		FilePath: result.FilePath,
		Language: result.Language,
		Mode:     opts.Mode,
	}

	if opts.Mode == ModeRaw {
		catalog.SourceCode = string(result.Source)
		return catalog, nil
	}

	e := &Extractor{
		result:   result,
		filePath: result.FilePath,
		opts:     opts,
		catalog:  catalog,
	}
	e.walkProgram(result.Root)

	return catalog, nil
}

// relName computes the repo-relative display name for a file.
// Falls back to the path itself when it is not under the repo root.
func relName(repoRoot, path string) string {
	if repoRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// nodeText returns the source text for a node.
func (e *Extractor) nodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(e.result.Source)
}
