package lexer

import (
	"twig/internal/diag"
	"twig/internal/token"
)

// scanIdentOrKeyword сканирует [letter][letter|digit|_]* и проверяет таблицу ключевых слов.
// Ключевые слова-операторы (and, or, xor, binary_*) становятся Operator.
func (lx *Lexer) scanIdentOrKeyword(sink *[]token.Token) {
	r := lx.r
	start := r.Mark()
	lx.buf.Clear()
	for !r.EOF() {
		c := r.Current()
		if !isIdentContinue(c) {
			word := lx.buf.Snapshot()
			lx.buf.Clear()
			text := string(word)
			if kw, ok := token.LookupKeyword(text); ok {
				if op, isOp := token.OperatorKeyword(kw); isOp {
					lx.emit(sink, token.NewOperator(word, op, start))
				} else {
					lx.emit(sink, token.NewKeyword(word, kw, start))
				}
				return
			}
			lx.emit(sink, token.NewIdentifier(word, start))
			return
		}
		lx.buf.AppendRune(c)
		r.Next()
	}
	lx.buf.Clear()
	lx.errorf(diag.LexUnterminatedIdentifier, start, "Unterminated identifier")
}
