package extract

import sitter "github.com/smacker/go-tree-sitter"

// Point is a zero-based line/column position in a source file.
type Point struct {
	Row    uint32 `json:"row" yaml:"row"`
	Column uint32 `json:"column" yaml:"column"`
}

// SourceSpan is a half-open region of a source file in document order.
// Start is always less than or equal to End.
type SourceSpan struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// newSpan builds a SourceSpan from a tree-sitter node's points.
func newSpan(node *sitter.Node) SourceSpan {
	start := node.StartPoint()
	end := node.EndPoint()
	return SourceSpan{
		Start: Point{Row: start.Row, Column: start.Column},
		End:   Point{Row: end.Row, Column: end.Column},
	}
}

// Before reports whether p is positioned before other in document order.
func (p Point) Before(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}
