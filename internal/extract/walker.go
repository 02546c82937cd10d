package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// exportFlags carry the export context an export_statement wrapper
// establishes for the declaration it wraps.
type exportFlags struct {
	exported   bool
	isDefault  bool
	isTypeOnly bool
}

// walkProgram dispatches every top-level statement of the program node.
// Statements inside namespace bodies recurse through the same dispatch so
// namespaced declarations surface as ordinary records.
func (e *Extractor) walkProgram(root *sitter.Node) {
	e.walkStatements(root)
}

func (e *Extractor) walkStatements(parent *sitter.Node) {
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		e.dispatch(parent.NamedChild(i), exportFlags{})
	}
}

// dispatch classifies a single statement node. Export wrappers are
// unwrapped here so the per-construct handlers see the inner declaration
// plus the export context.
func (e *Extractor) dispatch(node *sitter.Node, flags exportFlags) {
	switch node.Type() {
	case "import_statement":
		e.classifyImport(node)

	case "export_statement":
		e.classifyExport(node)

	case "lexical_declaration", "variable_declaration":
		e.classifyVariableStatement(node, flags)

	case "function_declaration", "generator_function_declaration":
		e.classifyFunctionDeclaration(node, flags)

	case "class_declaration", "abstract_class_declaration":
		e.classifyClass(node, flags)

	case "interface_declaration":
		e.classifyInterface(node, flags)

	case "type_alias_declaration":
		e.classifyTypeAlias(node, flags)

	case "enum_declaration":
		e.classifyEnum(node, flags)

	case "internal_module", "module":
		e.classifyNamespace(node)

	case "ambient_declaration":
		// declare { ... } and declare const/function forward to the
		// inner declaration without export context.
		for i := 0; i < int(node.NamedChildCount()); i++ {
			e.dispatch(node.NamedChild(i), exportFlags{})
		}

	case "ERROR":
		e.diag(node, "syntax error: statement could not be parsed")

	default:
		// Expression statements, control flow, and other construct kinds
		// carry no declarations worth cataloging.
	}
}

// classifyNamespace recurses into a namespace or module body so nested
// declarations are cataloged at top level. Module declarations quoting a
// string name are ambient module blocks and are skipped.
func (e *Extractor) classifyNamespace(node *sitter.Node) {
	name := node.ChildByFieldName("name")
	if name != nil && name.Type() == "string" {
		return
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	e.walkStatements(body)
}

// hasTokenChild reports whether node has an anonymous child token with the
// given text, e.g. "async", "static", "type", "default", "*".
func hasTokenChild(node *sitter.Node, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}
