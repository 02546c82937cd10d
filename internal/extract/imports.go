package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// classifyImport emits one ImportRecord per imported binding of an
// import_statement, or one side-effect record for a bare import.
func (e *Extractor) classifyImport(node *sitter.Node) {
	source := node.ChildByFieldName("source")
	if source == nil {
		e.diag(node, "import statement has no source module")
		return
	}
	module := unquote(e.nodeText(source))
	typeOnly := hasTokenChild(node, "type")

	clause := firstNamedOfType(node, "import_clause")
	if clause == nil {
		// import 'side-effect-module'; binds no name.
		e.addImport(node, ImportRecord{
			Module:       module,
			IsSideEffect: true,
			IsTypeOnly:   typeOnly,
		})
		return
	}

	emitted := false
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "identifier":
			// import Default from 'mod';
			e.addImport(node, ImportRecord{
				Name:       e.nodeText(child),
				Module:     module,
				IsTypeOnly: typeOnly,
			})
			emitted = true

		case "namespace_import":
			// import * as ns from 'mod';
			alias := firstNamedOfType(child, "identifier")
			if alias == nil {
				e.diag(child, "namespace import has no alias")
				continue
			}
			e.addImport(node, ImportRecord{
				Name:       e.nodeText(alias),
				Module:     module,
				IsTypeOnly: typeOnly,
			})
			emitted = true

		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					e.diag(spec, "import specifier has no name")
					continue
				}
				bound := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					bound = alias
				}
				e.addImport(node, ImportRecord{
					Name:       e.nodeText(bound),
					Module:     module,
					IsTypeOnly: typeOnly || hasTokenChild(spec, "type"),
				})
				emitted = true
			}
		}
	}

	if !emitted {
		e.diag(node, "import clause binds no names")
	}
}

// classifyRequire emits an ImportRecord for a CommonJS require binding:
// const x = require('mod'). Returns true when the declarator was a
// require call and has been consumed.
func (e *Extractor) classifyRequire(stmt, declarator *sitter.Node) bool {
	value := declarator.ChildByFieldName("value")
	if value == nil || value.Type() != "call_expression" {
		return false
	}
	fn := value.ChildByFieldName("function")
	if fn == nil || e.nodeText(fn) != "require" {
		return false
	}

	name := declarator.ChildByFieldName("name")
	if name == nil || name.Type() != "identifier" {
		// Destructured require bindings are not cataloged per-name.
		return false
	}

	module := ""
	if args := value.ChildByFieldName("arguments"); args != nil {
		if arg := firstNamedOfType(args, "string"); arg != nil {
			module = unquote(e.nodeText(arg))
		}
	}
	if module == "" {
		e.diag(declarator, "require call has no string module argument")
		return true
	}

	e.addImport(stmt, ImportRecord{
		Name:   e.nodeText(name),
		Module: module,
	})
	return true
}

func (e *Extractor) addImport(node *sitter.Node, rec ImportRecord) {
	rec.Span = newSpan(node)
	rec.SourceCode = e.nodeText(node)
	rec.FilePath = e.filePath
	e.catalog.Imports = append(e.catalog.Imports, rec)
}

// firstNamedOfType returns the first named child of node with the given
// type, or nil.
func firstNamedOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// unquote strips matching string delimiters from a module specifier.
func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case strings.HasPrefix(s, `'`) && strings.HasSuffix(s, `'`),
			strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`),
			strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`"):
			return s[1 : len(s)-1]
		}
	}
	return s
}
