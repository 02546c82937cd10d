// Package extract classifies TypeScript/TSX syntax trees into declaration
// catalogs for knowledge-graph construction.
//
// The package walks a concrete syntax tree produced by the parser package
// and, for every recognized declaration shape, emits a typed, span-stamped
// record: imports, exports, functions, classes with their methods,
// interfaces, type aliases, and enums. Records carry no references into the
// syntax tree and remain valid after the tree is discarded. No name or type
// resolution happens here; one catalog per file is the only output.
package extract

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

// ImportRecord describes one binding introduced by an import statement.
// An import with several named bindings yields one record per binding,
// all sharing the same Module. Side-effect imports (import './x.css')
// yield a single record with an empty Name.
type ImportRecord struct {
	// Name is the local binding name. Empty iff IsSideEffect is true.
	Name string `json:"name" yaml:"name"`
	// Module is the imported module specifier, without quotes.
	Module string `json:"module" yaml:"module"`
	// IsTypeOnly marks type-only imports (import type { ... }).
	IsTypeOnly bool `json:"is_type_only" yaml:"is_type_only"`
	// IsSideEffect marks bindingless imports kept for evaluation effect.
	IsSideEffect bool `json:"is_side_effect" yaml:"is_side_effect"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// ExportRecord describes one name exported from a file.
type ExportRecord struct {
	// Name is the exported name: "default" for default exports, "*" for
	// bare re-exports, otherwise the outward-facing identifier.
	Name string `json:"name" yaml:"name"`
	// LocalName is set only when the export is aliased (export { a as b }),
	// holding the local declaration name.
	LocalName string `json:"local_name,omitempty" yaml:"local_name,omitempty"`
	// IsDefault is true for default exports; such records always have
	// Name == "default".
	IsDefault bool `json:"is_default" yaml:"is_default"`
	// IsTypeOnly marks type-only exports (export type { ... }).
	IsTypeOnly bool `json:"is_type_only" yaml:"is_type_only"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// FunctionRecord describes a function declaration or a function-valued
// binding (const f = () => {}). Unnamed function expressions take the name
// of the binding they are assigned to.
type FunctionRecord struct {
	Name       string `json:"name" yaml:"name"`
	IsAsync    bool   `json:"is_async" yaml:"is_async"`
	IsExported bool   `json:"is_exported" yaml:"is_exported"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// ClassRecord describes a class or abstract class declaration.
type ClassRecord struct {
	Name       string `json:"name" yaml:"name"`
	IsAbstract bool   `json:"is_abstract" yaml:"is_abstract"`
	IsExported bool   `json:"is_exported" yaml:"is_exported"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// MethodRecord describes one member of a class body. ClassName is a plain
// name back-reference to the enclosing class, never a pointer: the record
// stays valid independent of the class record's lifetime, and the consuming
// graph layer joins the two by name.
type MethodRecord struct {
	Name      string `json:"name" yaml:"name"`
	ClassName string `json:"class_name" yaml:"class_name"`

	IsStatic      bool `json:"is_static" yaml:"is_static"`
	IsAsync       bool `json:"is_async" yaml:"is_async"`
	IsPrivate     bool `json:"is_private" yaml:"is_private"`
	IsGetter      bool `json:"is_getter" yaml:"is_getter"`
	IsSetter      bool `json:"is_setter" yaml:"is_setter"`
	IsConstructor bool `json:"is_constructor" yaml:"is_constructor"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// InterfaceRecord describes an interface declaration. Member-level detail
// is deliberately not captured; the record stands in for the whole construct.
type InterfaceRecord struct {
	Name       string `json:"name" yaml:"name"`
	IsExported bool   `json:"is_exported" yaml:"is_exported"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// TypeAliasRecord describes a type alias declaration.
type TypeAliasRecord struct {
	Name       string `json:"name" yaml:"name"`
	IsExported bool   `json:"is_exported" yaml:"is_exported"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// EnumRecord describes an enum declaration.
type EnumRecord struct {
	Name       string `json:"name" yaml:"name"`
	IsExported bool   `json:"is_exported" yaml:"is_exported"`

	Span       SourceSpan `json:"span" yaml:"span"`
	SourceCode string     `json:"source_code" yaml:"source_code"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
}

// Catalog is the complete set of records extracted from one file, in
// document order. A raw-mode catalog carries only file identity and the
// full source text; a detailed-mode catalog carries the record sequences
// and no source text. The two are never both populated.
type Catalog struct {
	// ID is a stable identifier derived from the absolute file path.
	// The same path always yields the same ID across runs.
	ID string `json:"id" yaml:"id"`
	// Name is the repo-relative display name of the file.
	Name string `json:"name" yaml:"name"`
	// FilePath is the absolute path of the file.
	FilePath string `json:"file_path" yaml:"file_path"`
	// Language is the variant the file was parsed with.
	Language parser.Language `json:"language" yaml:"language"`
	// Mode records which extraction mode produced this catalog.
	Mode Mode `json:"mode" yaml:"mode"`

	// SourceCode holds the complete source text in raw mode only.
	SourceCode string `json:"source_code,omitempty" yaml:"source_code,omitempty"`

	Imports     []ImportRecord    `json:"imports,omitempty" yaml:"imports,omitempty"`
	Exports     []ExportRecord    `json:"exports,omitempty" yaml:"exports,omitempty"`
	Functions   []FunctionRecord  `json:"functions,omitempty" yaml:"functions,omitempty"`
	Classes     []ClassRecord     `json:"classes,omitempty" yaml:"classes,omitempty"`
	Methods     []MethodRecord    `json:"methods,omitempty" yaml:"methods,omitempty"`
	Interfaces  []InterfaceRecord `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	TypeAliases []TypeAliasRecord `json:"type_aliases,omitempty" yaml:"type_aliases,omitempty"`
	Enums       []EnumRecord      `json:"enums,omitempty" yaml:"enums,omitempty"`

	// Diagnostics lists nodes that were recognized but could not be
	// classified. A non-empty list means the catalog is best-effort
	// complete, not that extraction failed.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// RecordCount returns the total number of declaration records in the catalog.
func (c *Catalog) RecordCount() int {
	return len(c.Imports) + len(c.Exports) + len(c.Functions) +
		len(c.Classes) + len(c.Methods) + len(c.Interfaces) +
		len(c.TypeAliases) + len(c.Enums)
}

// FileID derives the stable catalog identifier for a file path.
// The path is made absolute first so relative and absolute spellings of
// the same file agree.
func FileID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(abs)).String()
}
