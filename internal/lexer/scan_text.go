package lexer

import "twig/internal/token"

// scanText копит текст до {#, {% или {{. Text выпускается всегда, даже пустой,
// затем двухсимвольный разделитель и смена режима.
func (lx *Lexer) scanText(sink *[]token.Token) {
	r := lx.r
	start := r.Mark()
	lx.buf.Clear()
	for !r.EOF() {
		c := r.Current()
		if c == '{' {
			var sep token.SeparatorKind
			var mode TemplateMode
			switch r.Peek(1) {
			case '#':
				sep, mode = token.CommentStart, ModeComment
			case '%':
				sep, mode = token.ControlStart, ModeControl
			case '{':
				sep, mode = token.ExpressionStart, ModeExpression
			}
			if sep != token.SepNone {
				lx.emit(sink, token.NewText(lx.buf.Snapshot(), start))
				lx.buf.Clear()
				open := r.Mark()
				n := r.Next()
				r.Next()
				lx.emit(sink, token.NewSeparator([]rune{c, n}, sep, open))
				lx.opener = open
				lx.setMode(mode)
				return
			}
		}
		lx.buf.AppendRune(c)
		r.Next()
	}
	// конец ввода не ошибка
	lx.emit(sink, token.NewText(lx.buf.Snapshot(), start))
	lx.buf.Clear()
}
