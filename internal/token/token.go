package token

import (
	"fmt"
	"strings"

	"twig/internal/source"
)

// Token represents a single template token.
// Kind selects the meaningful payload field.
type Token struct {
	Kind     Kind
	Value    []rune
	Start    source.Marker
	HasStart bool
	Leading  []Trivia

	Inline    bool          // Comment
	Keyword   KeywordKind   // Keyword
	Literal   LiteralKind   // Literal
	Operator  OperatorKind  // Operator
	Separator SeparatorKind // Separator
	Children  []Token       // InterpolatedString
}

// NewText builds a Text token. Text tokens may be empty.
func NewText(value []rune, start source.Marker) Token {
	return Token{Kind: Text, Value: value, Start: start, HasStart: true}
}

// NewComment builds a block (inline=false) or line (inline=true) comment token.
func NewComment(value []rune, start source.Marker, inline bool) Token {
	return Token{Kind: Comment, Value: value, Start: start, HasStart: true, Inline: inline}
}

// NewIdentifier builds an Identifier token.
func NewIdentifier(value []rune, start source.Marker) Token {
	return Token{Kind: Identifier, Value: value, Start: start, HasStart: true}
}

// NewKeyword builds a Keyword token.
func NewKeyword(value []rune, kw KeywordKind, start source.Marker) Token {
	return Token{Kind: Keyword, Value: value, Start: start, HasStart: true, Keyword: kw}
}

// NewLiteral builds a Literal token.
func NewLiteral(value []rune, lit LiteralKind, start source.Marker) Token {
	return Token{Kind: Literal, Value: value, Start: start, HasStart: true, Literal: lit}
}

// NewOperator builds an Operator token.
func NewOperator(value []rune, op OperatorKind, start source.Marker) Token {
	return Token{Kind: Operator, Value: value, Start: start, HasStart: true, Operator: op}
}

// NewSeparator builds a Separator token.
func NewSeparator(value []rune, sep SeparatorKind, start source.Marker) Token {
	return Token{Kind: Separator, Value: value, Start: start, HasStart: true, Separator: sep}
}

// NewInterpolatedString builds an InterpolatedString token whose value is
// the concatenation of the children's values.
func NewInterpolatedString(children []Token, start source.Marker) Token {
	n := 0
	for i := range children {
		n += len(children[i].Value)
	}
	value := make([]rune, 0, n)
	for i := range children {
		value = append(value, children[i].Value...)
	}
	return Token{Kind: InterpolatedString, Value: value, Start: start, HasStart: true, Children: children}
}

// Text returns the raw value as a string.
func (t Token) Text() string { return string(t.Value) }

// StartMarker returns the start marker and whether it was recorded.
func (t Token) StartMarker() (source.Marker, bool) { return t.Start, t.HasStart }

// IsSeparator reports whether t is a Separator of kind sep.
func (t Token) IsSeparator(sep SeparatorKind) bool {
	return t.Kind == Separator && t.Separator == sep
}

// IsOperator reports whether t is an Operator of kind op.
func (t Token) IsOperator(op OperatorKind) bool {
	return t.Kind == Operator && t.Operator == op
}

// IsLiteral reports whether t is a Literal of kind lit.
func (t Token) IsLiteral(lit LiteralKind) bool {
	return t.Kind == Literal && t.Literal == lit
}

// Payload returns the name of the kind-specific payload, or "" when there is none.
func (t Token) Payload() string {
	switch t.Kind {
	case Comment:
		if t.Inline {
			return "inline"
		}
		return "block"
	case Keyword:
		return t.Keyword.String()
	case Literal:
		return t.Literal.String()
	case Operator:
		return t.Operator.String()
	case Separator:
		return t.Separator.String()
	default:
		return ""
	}
}

func (t Token) String() string {
	if p := t.Payload(); p != "" {
		return fmt.Sprintf("%s(%s,%q)", t.Kind, p, t.Text())
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text())
}

// Reconstruct concatenates leading trivia and raw values of toks in order.
// For inputs without string literals this reproduces the lexed source.
func Reconstruct(toks []Token) string {
	var sb strings.Builder
	for i := range toks {
		for _, tv := range toks[i].Leading {
			sb.WriteString(string(tv.Value))
		}
		sb.WriteString(string(toks[i].Value))
	}
	return sb.String()
}
