package token_test

import (
	"testing"

	"twig/internal/source"
	"twig/internal/token"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]token.KeywordKind{
		"start":      token.KwStart,
		"end":        token.KwEnd,
		"with":       token.KwWith,
		"not":        token.KwNot,
		"in":         token.KwIn,
		"every":      token.KwEvery,
		"some":       token.KwSome,
		"matches":    token.KwMatches,
		"has":        token.KwHas,
		"is":         token.KwIs,
		"and":        token.KwAnd,
		"binary_xor": token.KwBinaryXor,
	}

	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if got.String() != lexeme {
			t.Fatalf("%v.String() = %q, want %q", got, got.String(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен
	for _, s := range []string{"Start", "END", "if", "for", "true", "binaryand", "name"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestOperatorKeywords(t *testing.T) {
	cases := map[token.KeywordKind]token.OperatorKind{
		token.KwAnd:       token.LogicalAnd,
		token.KwOr:        token.LogicalOr,
		token.KwXor:       token.LogicalXor,
		token.KwBinaryAnd: token.BitwiseAnd,
		token.KwBinaryOr:  token.BitwiseOr,
		token.KwBinaryXor: token.BitwiseXor,
	}
	for kw, want := range cases {
		got, ok := token.OperatorKeyword(kw)
		if !ok || got != want {
			t.Fatalf("OperatorKeyword(%v) = %v,%v want %v", kw, got, ok, want)
		}
	}
	for _, kw := range []token.KeywordKind{token.KwNot, token.KwIn, token.KwIs, token.KwMatches} {
		if _, ok := token.OperatorKeyword(kw); ok {
			t.Fatalf("%v must stay a plain keyword", kw)
		}
	}
}

func TestSeparatorKindsAreDistinct(t *testing.T) {
	seen := map[string]token.SeparatorKind{}
	for k := token.ControlStart; k <= token.Pipe; k++ {
		name := k.String()
		if name == "None" {
			t.Fatalf("separator %d has no name", k)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("separator %s has codes %d and %d", name, prev, k)
		}
		seen[name] = k
	}
	if len(seen) != 17 {
		t.Fatalf("expected 17 separator kinds, got %d", len(seen))
	}
	if !token.ExpressionEnd.IsBlockDelimiter() || token.Comma.IsBlockDelimiter() {
		t.Fatal("IsBlockDelimiter misclassifies separators")
	}
}

func TestInterpolatedStringValueIsChildrenConcatenation(t *testing.T) {
	m := source.Marker{Index: 3, Line: 1, Column: 4}
	children := []token.Token{
		token.NewLiteral([]rune("a"), token.StringLiteral, m),
		token.NewIdentifier([]rune("name"), m),
		token.NewLiteral([]rune("b"), token.StringLiteral, m),
	}
	tok := token.NewInterpolatedString(children, m)
	if tok.Text() != "anameb" {
		t.Fatalf("value = %q, want %q", tok.Text(), "anameb")
	}
	if len(tok.Children) != 3 || !tok.HasStart || tok.Start != m {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestPayloadAndString(t *testing.T) {
	m := source.StartMarker
	cases := []struct {
		tok     token.Token
		payload string
		str     string
	}{
		{token.NewOperator([]rune("+"), token.Addition, m), "Addition", `Operator(Addition,"+")`},
		{token.NewSeparator([]rune("{{"), token.ExpressionStart, m), "ExpressionStart", `Separator(ExpressionStart,"{{")`},
		{token.NewComment([]rune("# hi"), m, true), "inline", `Comment(inline,"# hi")`},
		{token.NewText([]rune("x"), m), "", `Text("x")`},
		{token.NewLiteral([]rune("1"), token.Number, m), "Number", `Literal(Number,"1")`},
	}
	for _, c := range cases {
		if got := c.tok.Payload(); got != c.payload {
			t.Errorf("Payload() = %q, want %q", got, c.payload)
		}
		if got := c.tok.String(); got != c.str {
			t.Errorf("String() = %q, want %q", got, c.str)
		}
	}
}

func TestReconstructIncludesLeadingTrivia(t *testing.T) {
	m := source.StartMarker
	plus := token.NewOperator([]rune("+"), token.Addition, m)
	plus.Leading = []token.Trivia{{Kind: token.TriviaSpace, Value: []rune("  ")}}
	toks := []token.Token{
		token.NewText([]rune("a"), m),
		token.NewSeparator([]rune("{{"), token.ExpressionStart, m),
		plus,
		token.NewSeparator([]rune("}}"), token.ExpressionEnd, m),
	}
	if got := token.Reconstruct(toks); got != "a{{  +}}" {
		t.Fatalf("Reconstruct = %q", got)
	}
}
