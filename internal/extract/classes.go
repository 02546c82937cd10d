package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// classifyClass emits a ClassRecord for a class or abstract class
// declaration, then one MethodRecord per member of its body.
func (e *Extractor) classifyClass(node *sitter.Node, flags exportFlags) {
	name := node.ChildByFieldName("name")
	className := ""
	switch {
	case name != nil:
		className = e.nodeText(name)
	case flags.isDefault:
		className = "default"
	default:
		e.diag(node, "class declaration has no name")
		return
	}

	e.addClass(node, ClassRecord{
		Name:       className,
		IsAbstract: node.Type() == "abstract_class_declaration",
		IsExported: flags.exported,
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "method_definition", "abstract_method_signature":
			e.classifyMethod(member, className)
		case "ERROR":
			e.diag(member, "syntax error: class member could not be parsed")
		}
	}
}

// classifyMethod emits a MethodRecord for one class member. Getter, setter,
// and constructor are mutually exclusive; static, async, and private
// combine freely with the rest.
func (e *Extractor) classifyMethod(node *sitter.Node, className string) {
	name := node.ChildByFieldName("name")
	if name == nil {
		e.diag(node, "class member has no name")
		return
	}
	if name.Type() == "computed_property_name" {
		// Computed member names resolve at runtime; nothing stable to record.
		return
	}

	methodName := e.nodeText(name)
	rec := MethodRecord{
		Name:          methodName,
		ClassName:     className,
		IsStatic:      hasTokenChild(node, "static"),
		IsAsync:       hasTokenChild(node, "async"),
		IsConstructor: methodName == "constructor",
	}
	if !rec.IsConstructor {
		rec.IsGetter = hasTokenChild(node, "get")
		rec.IsSetter = hasTokenChild(node, "set")
	}
	rec.IsPrivate = name.Type() == "private_property_identifier" ||
		e.hasAccessibility(node, "private")

	rec.Span = newSpan(node)
	rec.SourceCode = e.nodeText(node)
	rec.FilePath = e.filePath
	e.catalog.Methods = append(e.catalog.Methods, rec)
}

// hasAccessibility reports whether a member carries the given accessibility
// modifier (public, private, protected).
func (e *Extractor) hasAccessibility(node *sitter.Node, want string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "accessibility_modifier" && e.nodeText(child) == want {
			return true
		}
	}
	return false
}

func (e *Extractor) addClass(node *sitter.Node, rec ClassRecord) {
	rec.Span = newSpan(node)
	rec.SourceCode = e.nodeText(node)
	rec.FilePath = e.filePath
	e.catalog.Classes = append(e.catalog.Classes, rec)
}
