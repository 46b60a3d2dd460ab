package lexer

import (
	"strconv"
	"unicode/utf8"

	"twig/internal/diag"
	"twig/internal/source"
	"twig/internal/token"
)

// scanRawString: '...' без escape-последовательностей и интерполяции.
func (lx *Lexer) scanRawString(sink *[]token.Token) {
	r := lx.r
	open := r.Mark()
	r.Next() // opening '\''
	lx.buf.Clear()
	for !r.EOF() {
		c := r.Current()
		if c == '\'' {
			r.Next()
			lx.emit(sink, token.NewLiteral(lx.buf.Snapshot(), token.StringLiteral, open))
			lx.buf.Clear()
			return
		}
		lx.buf.AppendRune(c)
		r.Next()
	}
	lx.buf.Clear()
	lx.errorf(diag.LexUnterminatedString, open, "Unterminated string literal")
}

// scanString: "..." с escape-последовательностями и интерполяцией #{ expr }.
// Без интерполяции получается Literal(String), иначе InterpolatedString.
// Trivia перед открывающей кавычкой достаётся самой строке, а не первому
// токену внутри #{ }.
func (lx *Lexer) scanString(sink *[]token.Token) {
	r := lx.r
	open := r.Mark()
	r.Next() // opening '"'
	outer := lx.hold
	lx.hold = nil

	// свой буфер: lx.buf занят вложенными сканерами внутри #{ }
	var text runeBuffer
	textStart := r.Position()
	var children []token.Token
	interpolated := false

	flush := func() {
		if text.Len() > 0 {
			children = append(children, token.NewLiteral(text.Snapshot(), token.StringLiteral, textStart))
			text.Clear()
		}
	}
	appendText := func(rs ...rune) {
		if text.Len() == 0 {
			textStart = r.Position()
		}
		text.AppendRunes(rs...)
	}

	for !r.EOF() {
		c := r.Current()
		switch {
		case c == '"':
			r.Next()
			lx.hold = outer
			if interpolated {
				flush()
				lx.emit(sink, token.NewInterpolatedString(children, open))
			} else {
				lx.emit(sink, token.NewLiteral(text.Snapshot(), token.String, open))
			}
			return
		case c == '\\':
			if text.Len() == 0 {
				textStart = r.Position()
			}
			if lx.scanEscape(text.AppendRunes) {
				continue
			}
		case c == '#' && r.Peek(1) == '{':
			flush()
			interpolated = true
			at := r.Mark()
			r.Next()
			r.Next()
			if !lx.scanInterpolation(&children) {
				lx.hold = outer
				lx.errorf(diag.LexUnterminatedInterpolation, at, "Unterminated string interpolation expression")
				return
			}
			continue
		}
		appendText(c)
		r.Next()
	}
	lx.hold = outer
	lx.errorf(diag.LexUnterminatedString, open, "Unterminated string literal")
}

// scanEscape handles an escape starting at the current backslash.
// It returns false for unknown escapes; the backslash is then kept as text.
func (lx *Lexer) scanEscape(appendText func(...rune)) bool {
	r := lx.r
	var decoded rune
	switch r.Peek(1) {
	case '\\':
		decoded = '\\'
	case '"':
		decoded = '"'
	case 't':
		decoded = '\t'
	case 'v':
		decoded = '\v'
	case 'r':
		decoded = '\r'
	case 'f':
		decoded = '\f'
	case 'n':
		decoded = '\n'
	case '#':
		if r.Peek(2) != '{' {
			return false
		}
		appendText('#', '{')
		r.Next()
		r.Next()
		r.Next()
		return true
	case 'x':
		lx.scanHexEscape(r.Mark(), appendText)
		return true
	default:
		return false
	}
	appendText(decoded)
	r.Next()
	r.Next()
	return true
}

// \xHH...: чётное непустое число hex-цифр, весь набор читается как один кодпоинт
// (\x41 -> "A", \x4142 -> U+4142). Суррогаты и значения вне Unicode отклоняются.
func (lx *Lexer) scanHexEscape(at source.Marker, appendText func(...rune)) {
	r := lx.r
	r.Next() // '\\'
	r.Next() // 'x'
	var digits []rune
	for isHexDigit(r.Current()) {
		digits = append(digits, r.Current())
		r.Next()
	}
	if len(digits) == 0 || len(digits)%2 != 0 {
		lx.errorf(diag.LexBadHexEscape, at, "Invalid hex escape sequence")
		return
	}
	v, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		lx.errorf(diag.LexBadHexEscape, at, "Invalid hex escape sequence")
		return
	}
	appendText(rune(v))
}

// scanInterpolation dispatches into children until the closing '}' at
// brace depth zero. Returns false at EOF.
// Пробелы перед закрывающей '}' не принадлежат ни одному ребёнку и
// отбрасываются: значение строки складывается только из детей.
func (lx *Lexer) scanInterpolation(children *[]token.Token) bool {
	r := lx.r
	depth := 0
	defer func() { lx.hold = nil }()
	for !r.EOF() {
		if r.Current() == '}' && depth == 0 {
			r.Next()
			return true
		}
		n := len(*children)
		lx.scanSubExpr(children)
		for i := n; i < len(*children); i++ {
			switch {
			case (*children)[i].IsSeparator(token.LeftBrace):
				depth++
			case (*children)[i].IsSeparator(token.RightBrace):
				depth--
			}
		}
		if depth < 0 {
			// закрывающая скобка пришла после пробелов
			*children = (*children)[:len(*children)-1]
			return true
		}
	}
	return false
}
