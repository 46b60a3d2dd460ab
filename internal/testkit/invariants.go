package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"twig/internal/source"
	"twig/internal/token"
)

// CheckTokenInvariants runs position invariants on a lexed stream:
// 1) every token carries a start marker inside the source
// 2) start markers never decrease
// 3) line/column of every marker agree with its codepoint index
// 4) children of an interpolated string start inside the parent literal
func CheckTokenInvariants(tokens []token.Token, src []rune) error {
	positions := positionTable(src)
	return checkSeq(tokens, positions, 0, "")
}

func checkSeq(tokens []token.Token, positions []source.Marker, floor uint32, path string) error {
	prev := floor
	for i := range tokens {
		tok := &tokens[i]
		where := fmt.Sprintf("%stoken %d (%s)", path, i, tok)
		if !tok.HasStart {
			return fmt.Errorf("%s: missing start marker", where)
		}
		m := tok.Start
		if int(m.Index) >= len(positions) {
			return fmt.Errorf("%s: index %d beyond source length %d", where, m.Index, len(positions)-1)
		}
		if m.Index < prev {
			return fmt.Errorf("%s: start %d precedes previous %d", where, m.Index, prev)
		}
		if want := positions[m.Index]; want != m {
			return fmt.Errorf("%s: marker %+v, want %+v", where, m, want)
		}
		prev = m.Index
		if len(tok.Children) > 0 {
			if err := checkSeq(tok.Children, positions, m.Index, where+" > "); err != nil {
				return err
			}
		}
	}
	return nil
}

// positionTable maps every codepoint index (plus the EOF slot) to its
// marker. LF, CRLF and a lone CR each end a line.
func positionTable(src []rune) []source.Marker {
	out := make([]source.Marker, len(src)+1)
	line, col := uint32(1), uint32(1)
	for i := range out {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("source too large: %w", err))
		}
		out[i] = source.Marker{Index: idx, Line: line, Column: col}
		if i == len(src) {
			break
		}
		switch {
		case src[i] == '\n', src[i] == '\r' && (i+1 == len(src) || src[i+1] != '\n'):
			line++
			col = 1
		default:
			col++
		}
	}
	return out
}

// CheckRoundTrip verifies that trivia plus values rebuild src. Only inputs
// without string literals are expected to pass.
func CheckRoundTrip(tokens []token.Token, src string) error {
	if got := token.Reconstruct(tokens); got != src {
		return fmt.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, src)
	}
	return nil
}

// HasStringLiteral reports whether src contains a quote character, which
// disables the round-trip property.
func HasStringLiteral(src string) bool {
	for _, r := range src {
		if r == '"' || r == '\'' {
			return true
		}
	}
	return false
}
