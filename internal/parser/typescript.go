package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// newTypeScriptParser creates a tree-sitter parser configured for plain TypeScript.
func newTypeScriptParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return parser
}

// newTSXParser creates a tree-sitter parser configured for the TSX grammar.
// The TSX grammar accepts JSX expressions in addition to plain TypeScript.
func newTSXParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())
	return parser
}
