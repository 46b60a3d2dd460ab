package lexer

import (
	"fmt"
	"iter"

	"fortio.org/safecast"

	"twig/internal/source"
)

// EOFRune is returned by Peek and Current past the end of input.
const EOFRune rune = -1

// Reader walks a codepoint sequence and tracks line/column positions.
// A fresh Reader has no current codepoint; call Next once to load the first one.
type Reader struct {
	src   []rune
	pos   int // index of the current codepoint, -1 before the first Next
	cur   rune
	index uint32
	line  uint32
	col   uint32

	last     source.Marker // single last-marker slot
	markNext bool
}

// NewReader creates a reader over src.
func NewReader(src []rune) *Reader {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		panic(fmt.Errorf("source too large: %w", err))
	}
	return &Reader{
		src:  src,
		pos:  -1,
		cur:  EOFRune,
		line: 1,
		last: source.StartMarker,
	}
}

// Next advances one codepoint and returns the new current codepoint
// (EOFRune past the end). The line advances when the previous codepoint was
// LF, or CR not followed by LF; the column resets to 1 in that case.
func (r *Reader) Next() rune {
	if r.pos >= len(r.src) {
		r.cur = EOFRune
		return EOFRune
	}
	if r.pos < 0 {
		r.pos = 0
		r.col = 1
	} else {
		prev := r.src[r.pos]
		r.pos++
		r.index++
		if prev == '\n' || (prev == '\r' && r.at(r.pos) != '\n') {
			r.line++
			r.col = 1
		} else {
			r.col++
		}
	}
	r.cur = r.at(r.pos)
	if r.markNext {
		r.markNext = false
		r.last = r.Position()
	}
	return r.cur
}

func (r *Reader) at(i int) rune {
	if i < 0 || i >= len(r.src) {
		return EOFRune
	}
	return r.src[i]
}

// Peek looks n codepoints ahead of the current one; Peek(0) == Current().
func (r *Reader) Peek(n int) rune {
	if r.pos < 0 {
		return r.at(n - 1)
	}
	return r.at(r.pos + n)
}

// Current returns the current codepoint or EOFRune.
func (r *Reader) Current() rune { return r.cur }

// EOF reports whether the reader moved past the last codepoint.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.src)
}

// Position returns the marker of the current codepoint.
func (r *Reader) Position() source.Marker {
	col := r.col
	if col == 0 {
		col = 1
	}
	return source.Marker{Index: r.index, Line: r.line, Column: col}
}

// Mark stores the current position in the last-marker slot and returns it.
func (r *Reader) Mark() source.Marker {
	r.last = r.Position()
	return r.last
}

// MarkNext defers Mark to the next call of Next.
func (r *Reader) MarkNext() {
	r.markNext = true
}

// LastMarker returns the most recently captured marker.
func (r *Reader) LastMarker() source.Marker { return r.last }

// Len returns the total number of codepoints.
func (r *Reader) Len() int { return len(r.src) }

// All returns the codepoints following the current one, advancing the reader.
// The sequence is single-use: iterating again continues from where the
// previous iteration stopped.
func (r *Reader) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			c := r.Next()
			if c == EOFRune {
				return
			}
			if !yield(c) {
				return
			}
		}
	}
}
