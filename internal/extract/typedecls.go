package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Interfaces, type aliases, and enums all follow the same shape: a name
// field, an export flag from the wrapper, and the whole construct as the
// record's source.

func (e *Extractor) classifyInterface(node *sitter.Node, flags exportFlags) {
	name := node.ChildByFieldName("name")
	if name == nil {
		e.diag(node, "interface declaration has no name")
		return
	}
	rec := InterfaceRecord{
		Name:       e.nodeText(name),
		IsExported: flags.exported,
		Span:       newSpan(node),
		SourceCode: e.nodeText(node),
		FilePath:   e.filePath,
	}
	e.catalog.Interfaces = append(e.catalog.Interfaces, rec)
}

func (e *Extractor) classifyTypeAlias(node *sitter.Node, flags exportFlags) {
	name := node.ChildByFieldName("name")
	if name == nil {
		e.diag(node, "type alias declaration has no name")
		return
	}
	rec := TypeAliasRecord{
		Name:       e.nodeText(name),
		IsExported: flags.exported,
		Span:       newSpan(node),
		SourceCode: e.nodeText(node),
		FilePath:   e.filePath,
	}
	e.catalog.TypeAliases = append(e.catalog.TypeAliases, rec)
}

func (e *Extractor) classifyEnum(node *sitter.Node, flags exportFlags) {
	name := node.ChildByFieldName("name")
	if name == nil {
		e.diag(node, "enum declaration has no name")
		return
	}
	rec := EnumRecord{
		Name:       e.nodeText(name),
		IsExported: flags.exported,
		Span:       newSpan(node),
		SourceCode: e.nodeText(node),
		FilePath:   e.filePath,
	}
	e.catalog.Enums = append(e.catalog.Enums, rec)
}
