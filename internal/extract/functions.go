package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// classifyFunctionDeclaration emits a FunctionRecord for a named function
// or generator function declaration.
func (e *Extractor) classifyFunctionDeclaration(node *sitter.Node, flags exportFlags) {
	name := node.ChildByFieldName("name")
	if name == nil {
		if flags.isDefault {
			// export default function () {} — the export handler already
			// recorded the default export; name the function after it.
			e.addFunction(node, FunctionRecord{
				Name:       "default",
				IsAsync:    hasTokenChild(node, "async"),
				IsExported: true,
			})
			return
		}
		e.diag(node, "function declaration has no name")
		return
	}

	e.addFunction(node, FunctionRecord{
		Name:       e.nodeText(name),
		IsAsync:    hasTokenChild(node, "async"),
		IsExported: flags.exported,
	})
}

// classifyVariableStatement walks the declarators of a const/let/var
// statement. Function-valued bindings become FunctionRecords named after
// the binding; require() bindings become ImportRecords; everything else is
// skipped.
func (e *Extractor) classifyVariableStatement(node *sitter.Node, flags exportFlags) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		if e.classifyRequire(node, decl) {
			continue
		}
		e.classifyFunctionBinding(node, decl, flags)
	}
}

// classifyFunctionBinding emits a FunctionRecord when a declarator's value
// is an arrow function or function expression. The binding name wins even
// when the function expression names itself: the binding is what the rest
// of the file calls.
func (e *Extractor) classifyFunctionBinding(stmt, decl *sitter.Node, flags exportFlags) {
	value := decl.ChildByFieldName("value")
	if value == nil {
		return
	}
	switch value.Type() {
	case "arrow_function", "function_expression", "function":
	default:
		return
	}

	name := decl.ChildByFieldName("name")
	if name == nil || name.Type() != "identifier" {
		e.diag(decl, "function binding has no simple name")
		return
	}

	e.addFunction(stmt, FunctionRecord{
		Name:       e.nodeText(name),
		IsAsync:    hasTokenChild(value, "async"),
		IsExported: flags.exported,
	})
}

func (e *Extractor) addFunction(node *sitter.Node, rec FunctionRecord) {
	rec.Span = newSpan(node)
	rec.SourceCode = e.nodeText(node)
	rec.FilePath = e.filePath
	e.catalog.Functions = append(e.catalog.Functions, rec)
}
