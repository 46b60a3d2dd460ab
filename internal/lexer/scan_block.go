package lexer

import (
	"twig/internal/diag"
	"twig/internal/token"
)

// scanBlock сканирует {% ... %} или {{ ... }} до терминатора.
// Возвращает false, если блок не закрыт до конца ввода.
func (lx *Lexer) scanBlock(sink *[]token.Token) bool {
	r := lx.r
	control := lx.mode == ModeControl
	for !r.EOF() {
		c := r.Current()
		switch {
		case control && c == '%' && r.Peek(1) == '}':
			lx.closeBlock(sink, token.ControlEnd)
			return true
		case !control && c == '}' && r.Peek(1) == '}':
			lx.closeBlock(sink, token.ExpressionEnd)
			return true
		}

		lx.scanSubExpr(sink)

		// "x }}" и "x %}": диспетчер уже выдал '}' или '%', следующий '}' закрывает блок
		if r.Current() == '}' && len(*sink) > 0 {
			last := &(*sink)[len(*sink)-1]
			if !last.HasStart || last.Start.Index+1 != r.Position().Index {
				continue
			}
			switch {
			case !control && last.IsSeparator(token.RightBrace):
				lx.rewriteTerminator(last, token.ExpressionEnd)
				return true
			case control && last.IsOperator(token.Modulus):
				lx.rewriteTerminator(last, token.ControlEnd)
				return true
			}
		}
	}

	if control {
		lx.errorf(diag.LexUnterminatedBlock, lx.opener, "Unterminated control block")
	} else {
		lx.errorf(diag.LexUnterminatedBlock, lx.opener, "Unterminated expression block")
	}
	return false
}

func (lx *Lexer) closeBlock(sink *[]token.Token, sep token.SeparatorKind) {
	r := lx.r
	at := r.Mark()
	c := r.Current()
	n := r.Next()
	r.Next()
	lx.emit(sink, token.NewSeparator([]rune{c, n}, sep, at))
	lx.setMode(ModeText)
}

func (lx *Lexer) rewriteTerminator(last *token.Token, sep token.SeparatorKind) {
	leading := last.Leading
	*last = token.NewSeparator([]rune{last.Value[0], '}'}, sep, last.Start)
	last.Leading = leading
	lx.r.Next()
	lx.setMode(ModeText)
}
