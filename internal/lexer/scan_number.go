package lexer

import (
	"twig/internal/diag"
	"twig/internal/source"
	"twig/internal/token"
)

// scanNumber: цифры и не более одной точки. Терминатор не потребляется.
// Ошибка прерывает литерал: токена нет, остаток ошибочного прогона пропускается.
func (lx *Lexer) scanNumber(sink *[]token.Token) {
	r := lx.r
	start := r.Mark()
	lx.buf.Clear()
	dots := 0
loop:
	for !r.EOF() {
		c := r.Current()
		switch {
		case isDigit(c):
			lx.buf.AppendRune(c)
			r.Next()
		case c == '.':
			if dots > 0 {
				lx.abortNumber(r.Mark(), "Invalid number literal. Numbers may only contain one dot.")
				return
			}
			dots++
			lx.buf.AppendRune(c)
			r.Next()
		case isLetter(c) || c == '_':
			lx.abortNumber(r.Mark(), "Invalid number literal")
			return
		default:
			break loop
		}
	}
	// EOF тоже завершает литерал
	lx.emit(sink, token.NewLiteral(lx.buf.Snapshot(), token.Number, start))
	lx.buf.Clear()
}

func (lx *Lexer) abortNumber(at source.Marker, msg string) {
	lx.errorf(diag.LexBadNumber, at, msg)
	lx.buf.Clear()
	for c := lx.r.Current(); isIdentContinue(c) || c == '.'; c = lx.r.Current() {
		lx.r.Next()
	}
}
