package token

// TriviaKind classifies skipped source that is not part of any token value.
type TriviaKind uint8

const (
	// TriviaSpace is a run of whitespace inside a block.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is the line terminator consumed by an inline comment.
	TriviaNewline
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	default:
		return "Unknown"
	}
}

type Trivia struct {
	Kind  TriviaKind
	Value []rune
}
