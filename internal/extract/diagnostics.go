package extract

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Diagnostic records a node that was recognized but could not be
// classified: a syntax-error subtree or a shape that matched no
// classifier. Diagnostics never fail an extraction; deliberately
// unsupported constructs (dynamic imports, ambient modules, computed
// export targets) are skipped without one.
type Diagnostic struct {
	FilePath string     `json:"file_path" yaml:"file_path"`
	NodeType string     `json:"node_type" yaml:"node_type"`
	Span     SourceSpan `json:"span" yaml:"span"`
	Message  string     `json:"message" yaml:"message"`
}

// String formats the diagnostic as path:line:col: message.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s (%s)",
		d.FilePath, d.Span.Start.Row+1, d.Span.Start.Column+1, d.Message, d.NodeType)
}

// diag records a diagnostic for a node that could not be classified.
func (e *Extractor) diag(node *sitter.Node, message string) {
	e.catalog.Diagnostics = append(e.catalog.Diagnostics, Diagnostic{
		FilePath: e.filePath,
		NodeType: node.Type(),
		Span:     newSpan(node),
		Message:  message,
	})
}
