package lexer

import "unicode"

// ===== Классификаторы =====

func isSpace(r rune) bool {
	return r != EOFRune && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return r != EOFRune && unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || isDigit(r) || isLetter(r)
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// quoteRune renders r for diagnostics.
func quoteRune(r rune) string {
	if r == EOFRune {
		return "EOF"
	}
	return string(r)
}
