package lexer

// runeBuffer накапливает кодпоинты текущего токена.
type runeBuffer struct {
	data []rune
}

func (b *runeBuffer) AppendRune(r rune) {
	b.data = append(b.data, r)
}

func (b *runeBuffer) AppendRunes(rs ...rune) {
	b.data = append(b.data, rs...)
}

// Snapshot returns a copy of the buffered codepoints; the buffer keeps its storage.
func (b *runeBuffer) Snapshot() []rune {
	out := make([]rune, len(b.data))
	copy(out, b.data)
	return out
}

func (b *runeBuffer) Clear() {
	b.data = b.data[:0]
}

func (b *runeBuffer) Len() int {
	return len(b.data)
}

func (b *runeBuffer) String() string {
	return string(b.data)
}
