package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// classifyExport handles every export_statement form:
//
//	export default <expr>               export { a, b as c }
//	export default function f() {}      export { a } from 'mod'
//	export const x = 1                  export * from 'mod'
//	export function f() {}              export type { T }
//	export class C {}                   export * as ns from 'mod'
//
// A wrapped declaration is re-dispatched with export flags set, so the
// declaration's own record carries IsExported, and a paired ExportRecord
// names the outward-facing binding.
func (e *Extractor) classifyExport(node *sitter.Node) {
	typeOnly := hasTokenChild(node, "type")
	isDefault := hasTokenChild(node, "default")
	source := node.ChildByFieldName("source")

	// export * from 'mod' / export * as ns from 'mod'
	if source != nil && hasTokenChild(node, "*") {
		name := "*"
		if ns := firstNamedOfType(node, "namespace_export"); ns != nil {
			if id := firstNamedOfType(ns, "identifier"); id != nil {
				name = e.nodeText(id)
			}
		}
		e.addExport(node, ExportRecord{Name: name, IsTypeOnly: typeOnly})
		e.reexportImport(node, source, name, typeOnly)
		return
	}

	// export { a, b as c } [from 'mod']
	if clause := firstNamedOfType(node, "export_clause"); clause != nil {
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			spec := clause.NamedChild(i)
			if spec.Type() != "export_specifier" {
				continue
			}
			name := spec.ChildByFieldName("name")
			if name == nil {
				e.diag(spec, "export specifier has no name")
				continue
			}
			rec := ExportRecord{
				Name:       e.nodeText(name),
				IsTypeOnly: typeOnly || hasTokenChild(spec, "type"),
			}
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				rec.LocalName = rec.Name
				rec.Name = e.nodeText(alias)
			}
			e.addExport(node, rec)
			if source != nil {
				e.reexportImport(node, source, e.nodeText(name), rec.IsTypeOnly)
			}
		}
		return
	}

	// export [default] <declaration>
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		flags := exportFlags{exported: true, isDefault: isDefault, isTypeOnly: typeOnly}
		e.dispatch(decl, flags)
		if isDefault {
			e.addExport(node, ExportRecord{Name: "default", IsDefault: true})
		} else if name := declarationNames(decl); len(name) > 0 {
			for _, n := range name {
				e.addExport(node, ExportRecord{Name: e.nodeText(n), IsTypeOnly: typeOnly})
			}
		} else {
			e.diag(decl, "exported declaration has no name")
		}
		return
	}

	// export default <expression>
	if value := node.ChildByFieldName("value"); value != nil {
		e.addExport(node, ExportRecord{Name: "default", IsDefault: true})
		switch value.Type() {
		case "arrow_function", "function_expression", "function":
			e.addFunction(node, FunctionRecord{
				Name:       "default",
				IsAsync:    hasTokenChild(value, "async"),
				IsExported: true,
			})
		}
		return
	}

	e.diag(node, "export statement has no clause, declaration, or value")
}

// declarationNames returns the name nodes a declaration introduces: one for
// functions, classes, interfaces, type aliases, and enums; one per
// declarator for variable statements.
func declarationNames(decl *sitter.Node) []*sitter.Node {
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
		var names []*sitter.Node
		for i := 0; i < int(decl.NamedChildCount()); i++ {
			d := decl.NamedChild(i)
			if d.Type() != "variable_declarator" {
				continue
			}
			if n := d.ChildByFieldName("name"); n != nil && n.Type() == "identifier" {
				names = append(names, n)
			}
		}
		return names
	default:
		if n := decl.ChildByFieldName("name"); n != nil {
			return []*sitter.Node{n}
		}
		return nil
	}
}

// reexportImport synthesizes an ImportRecord for a re-export source module
// when the option is enabled, so module dependency edges survive files that
// only forward bindings.
func (e *Extractor) reexportImport(node, source *sitter.Node, name string, typeOnly bool) {
	if !e.opts.ReexportImports {
		return
	}
	e.addImport(node, ImportRecord{
		Name:       name,
		Module:     unquote(e.nodeText(source)),
		IsTypeOnly: typeOnly,
	})
}

func (e *Extractor) addExport(node *sitter.Node, rec ExportRecord) {
	rec.Span = newSpan(node)
	rec.SourceCode = e.nodeText(node)
	rec.FilePath = e.filePath
	e.catalog.Exports = append(e.catalog.Exports, rec)
}
