// Package token defines the token model produced by the template lexer.
// Invariants:
//   - Token is a tagged union: Kind selects which payload field is meaningful
//     (Inline, Keyword, Literal, Operator, Separator, Children).
//   - Token.Value holds raw codepoints. For string literals it is the decoded
//     content without quotes; for InterpolatedString it is the concatenation
//     of the children's values.
//   - Every non-Text token carries its start marker (HasStart == true).
//   - Whitespace skipped inside blocks is attached to the next token as
//     Leading trivia and never appears in the main token stream.
package token
