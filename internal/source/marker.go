package source

import "fmt"

// Marker is a captured scanner position.
// Index counts codepoints from the start of the source, Line and Column are 1-based.
type Marker struct {
	Index  uint32 `json:"index" msgpack:"index"`
	Line   uint32 `json:"line" msgpack:"line"`
	Column uint32 `json:"column" msgpack:"column"`
}

// StartMarker is the position of the first codepoint of any source.
var StartMarker = Marker{Index: 0, Line: 1, Column: 1}

func (m Marker) String() string {
	return fmt.Sprintf("%d:%d", m.Line, m.Column)
}

// Before reports whether m precedes other in the source.
func (m Marker) Before(other Marker) bool {
	return m.Index < other.Index
}

// LineCol drops the codepoint offset.
func (m Marker) LineCol() LineCol {
	return LineCol{Line: m.Line, Col: m.Column}
}
