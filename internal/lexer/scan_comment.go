package lexer

import (
	"twig/internal/diag"
	"twig/internal/token"
)

// scanComment копит тело {# ... #} до закрывающего #}.
// Возвращает false, если комментарий не закрыт.
func (lx *Lexer) scanComment(sink *[]token.Token) bool {
	r := lx.r
	start := r.Mark()
	lx.buf.Clear()
	for !r.EOF() {
		c := r.Current()
		if c == '#' && r.Peek(1) == '}' {
			lx.emit(sink, token.NewComment(lx.buf.Snapshot(), start, false))
			lx.buf.Clear()
			end := r.Mark()
			r.Next()
			r.Next()
			lx.emit(sink, token.NewSeparator([]rune("#}"), token.CommentEnd, end))
			lx.setMode(ModeText)
			return true
		}
		lx.buf.AppendRune(c)
		r.Next()
	}
	lx.buf.Clear()
	lx.errorf(diag.LexUnterminatedComment, lx.opener, "Unterminated comment block")
	return false
}

// scanInlineComment: '#' до LF или CRLF. Перевод строки уходит в trivia.
func (lx *Lexer) scanInlineComment(sink *[]token.Token) {
	r := lx.r
	start := r.Mark()
	lx.buf.Clear()
	lx.buf.AppendRune('#')
	r.Next()
	for !r.EOF() {
		c := r.Current()
		var eol []rune
		switch {
		case c == '\n':
			eol = []rune{'\n'}
		case c == '\r' && r.Peek(1) == '\n':
			eol = []rune{'\r', '\n'}
		}
		if eol != nil {
			lx.emit(sink, token.NewComment(lx.buf.Snapshot(), start, true))
			lx.buf.Clear()
			for range eol {
				r.Next()
			}
			lx.holdTrivia(token.TriviaNewline, eol)
			return
		}
		lx.buf.AppendRune(c)
		r.Next()
	}
	lx.buf.Clear()
	lx.errorf(diag.LexUnterminatedInlineComment, start, "Unterminated inline comment block")
}
