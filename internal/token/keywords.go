package token

// KeywordKind identifies a reserved word. Keyword tokens carry one;
// every other token carries KwNone.
type KeywordKind uint8

const (
	KwNone KeywordKind = iota
	KwStart
	KwEnd
	KwWith
	KwNot
	KwIn
	KwEvery
	KwSome
	KwAnd
	KwOr
	KwXor
	KwBinaryAnd
	KwBinaryOr
	KwBinaryXor
	KwMatches
	KwHas
	KwIs
)

var keywords = map[string]KeywordKind{
	"start":      KwStart,
	"end":        KwEnd,
	"with":       KwWith,
	"not":        KwNot,
	"in":         KwIn,
	"every":      KwEvery,
	"some":       KwSome,
	"matches":    KwMatches,
	"has":        KwHas,
	"and":        KwAnd,
	"or":         KwOr,
	"is":         KwIs,
	"xor":        KwXor,
	"binary_and": KwBinaryAnd,
	"binary_or":  KwBinaryOr,
	"binary_xor": KwBinaryXor,
}

// operatorKeywords are keywords that the lexer reports as Operator tokens.
var operatorKeywords = map[KeywordKind]OperatorKind{
	KwAnd:       LogicalAnd,
	KwOr:        LogicalOr,
	KwXor:       LogicalXor,
	KwBinaryAnd: BitwiseAnd,
	KwBinaryOr:  BitwiseOr,
	KwBinaryXor: BitwiseXor,
}

var keywordNames = map[KeywordKind]string{}

func init() {
	for name, kw := range keywords {
		keywordNames[kw] = name
	}
}

// LookupKeyword returns the keyword for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (KeywordKind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// OperatorKeyword returns the operator a keyword stands for, if any.
func OperatorKeyword(kw KeywordKind) (OperatorKind, bool) {
	op, ok := operatorKeywords[kw]
	return op, ok
}

func (k KeywordKind) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return "none"
}
