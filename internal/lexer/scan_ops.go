package lexer

import (
	"fmt"

	"twig/internal/diag"
	"twig/internal/token"
)

// scanSubExpr: диспетчер одной единицы внутри блока или интерполяции.
// Пробелы пропускаются и уходят в leading trivia следующего токена.
func (lx *Lexer) scanSubExpr(sink *[]token.Token) {
	r := lx.r
	if isSpace(r.Current()) {
		lx.buf.Clear()
		for isSpace(r.Current()) {
			lx.buf.AppendRune(r.Current())
			r.Next()
		}
		lx.holdTrivia(token.TriviaSpace, lx.buf.Snapshot())
		lx.buf.Clear()
		// незакрытый блок обрабатывает вызывающий
		if r.EOF() {
			return
		}
	}

	c := r.Current()
	switch {
	case c == '#':
		lx.scanInlineComment(sink)
	case c == '\'':
		lx.scanRawString(sink)
	case c == '"':
		lx.scanString(sink)
	case isDigit(c):
		lx.scanNumber(sink)
	case isLetter(c):
		lx.scanIdentOrKeyword(sink)
	default:
		lx.scanOperatorOrPunct(sink)
	}
}

// try2 съедает два кодпоинта, если они совпадают с a, b.
func (lx *Lexer) try2(a, b rune) bool {
	if lx.r.Current() != a || lx.r.Peek(1) != b {
		return false
	}
	lx.r.Next()
	lx.r.Next()
	return true
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct(sink *[]token.Token) {
	r := lx.r
	start := r.Mark()
	op := func(text string, k token.OperatorKind) {
		lx.emit(sink, token.NewOperator([]rune(text), k, start))
	}
	sep := func(text string, k token.SeparatorKind) {
		lx.emit(sink, token.NewSeparator([]rune(text), k, start))
	}

	switch {
	case lx.try2('*', '*'):
		op("**", token.Exponentiation)
		return
	case lx.try2('=', '='):
		op("==", token.Equal)
		return
	case lx.try2('!', '='):
		op("!=", token.NotEqual)
		return
	case lx.try2('<', '='):
		op("<=", token.LessThanOrEqual)
		return
	case lx.try2('>', '='):
		op(">=", token.GreaterThanOrEqual)
		return
	case lx.try2('?', ':'):
		op("?:", token.TernaryElse)
		return
	}

	c := r.Current()
	r.Next()
	switch c {
	case '+':
		op("+", token.Addition)
	case '-':
		op("-", token.Subtraction)
	case '*':
		op("*", token.Multiplication)
	case '/':
		op("/", token.Division)
	case '%':
		op("%", token.Modulus)
	case '=':
		op("=", token.Assignment)
	case '<':
		op("<", token.LessThan)
	case '>':
		op(">", token.GreaterThan)
	case '?':
		op("?", token.Ternary)
	case '.':
		sep(".", token.Dot)
	case '{':
		sep("{", token.LeftBrace)
	case '}':
		sep("}", token.RightBrace)
	case '[':
		sep("[", token.LeftBracket)
	case ']':
		sep("]", token.RightBracket)
	case '(':
		sep("(", token.LeftParen)
	case ')':
		sep(")", token.RightParen)
	case '|':
		sep("|", token.Pipe)
	case ':':
		sep(":", token.Colon)
	case ',':
		sep(",", token.Comma)
	case ';':
		sep(";", token.Semicolon)
	case '!':
		// одиночный '!' не оператор: not пишется словом
		lx.errorf(diag.LexInvalidOperator, start, "Invalid operator '!'")
	default:
		lx.errorf(diag.LexUnknownChar, start, fmt.Sprintf("Unexpected character '%s'", quoteRune(c)))
	}
}
