package token

// Kind is the token discriminant.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never emits it.
	Invalid Kind = iota
	// Text is literal template text outside of tags.
	Text
	// Comment is a block comment body or an inline `#` comment.
	Comment
	// Identifier is a name that is not a keyword.
	Identifier
	// Keyword is a reserved word (see Keyword).
	Keyword
	// Literal is a number or string literal (see LiteralKind).
	Literal
	// Operator is an arithmetic, comparison, logical or ternary operator.
	Operator
	// Separator is a tag delimiter or structural punctuation.
	Separator
	// InterpolatedString is a double-quoted string with `#{...}` fragments.
	InterpolatedString
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Comment:
		return "Comment"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Literal:
		return "Literal"
	case Operator:
		return "Operator"
	case Separator:
		return "Separator"
	case InterpolatedString:
		return "InterpolatedString"
	default:
		return "Invalid"
	}
}

// LiteralKind classifies Literal tokens.
type LiteralKind uint8

const (
	// LitNone is used for tokens that are not literals.
	LitNone LiteralKind = iota
	// StringLiteral is a verbatim '...' string or a text fragment of an interpolated string.
	StringLiteral
	// String is a "..." string without interpolation.
	String
	// Number is a decimal number with an optional fraction.
	Number
	Boolean
	Null
	Hex
)

func (k LiteralKind) String() string {
	switch k {
	case StringLiteral:
		return "StringLiteral"
	case String:
		return "String"
	case Number:
		return "Number"
	case Boolean:
		return "Boolean"
	case Null:
		return "Null"
	case Hex:
		return "Hex"
	default:
		return "None"
	}
}

// OperatorKind classifies Operator tokens.
type OperatorKind uint8

const (
	OpNone OperatorKind = iota
	Assignment          // =
	Addition            // +
	Subtraction         // -
	Multiplication      // *
	Division            // /
	Modulus             // %
	Exponentiation      // **
	LogicalAnd          // and
	LogicalOr           // or
	LogicalXor          // xor
	LogicalNot
	BitwiseAnd // binary_and
	BitwiseOr  // binary_or
	BitwiseXor // binary_xor
	BitwiseNot
	Equal              // ==
	NotEqual           // !=
	GreaterThan        // >
	LessThan           // <
	GreaterThanOrEqual // >=
	LessThanOrEqual    // <=
	Ternary            // ?
	TernaryElse        // ?:
)

var operatorNames = [...]string{
	OpNone:             "None",
	Assignment:         "Assignment",
	Addition:           "Addition",
	Subtraction:        "Subtraction",
	Multiplication:     "Multiplication",
	Division:           "Division",
	Modulus:            "Modulus",
	Exponentiation:     "Exponentiation",
	LogicalAnd:         "LogicalAnd",
	LogicalOr:          "LogicalOr",
	LogicalXor:         "LogicalXor",
	LogicalNot:         "LogicalNot",
	BitwiseAnd:         "BitwiseAnd",
	BitwiseOr:          "BitwiseOr",
	BitwiseXor:         "BitwiseXor",
	BitwiseNot:         "BitwiseNot",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	GreaterThan:        "GreaterThan",
	LessThan:           "LessThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	LessThanOrEqual:    "LessThanOrEqual",
	Ternary:            "Ternary",
	TernaryElse:        "TernaryElse",
}

func (k OperatorKind) String() string {
	if int(k) < len(operatorNames) {
		return operatorNames[k]
	}
	return "None"
}

// SeparatorKind classifies Separator tokens. Every kind has its own code.
type SeparatorKind uint8

const (
	SepNone         SeparatorKind = iota
	ControlStart                  // {%
	ControlEnd                    // %}
	ExpressionStart               // {{
	ExpressionEnd                 // }}
	CommentStart                  // {#
	CommentEnd                    // #}
	LeftParen                     // (
	RightParen                    // )
	LeftBracket                   // [
	RightBracket                  // ]
	LeftBrace                     // {
	RightBrace                    // }
	Comma                         // ,
	Colon                         // :
	Semicolon                     // ;
	Dot                           // .
	Pipe                          // |
)

var separatorNames = [...]string{
	SepNone:         "None",
	ControlStart:    "ControlStart",
	ControlEnd:      "ControlEnd",
	ExpressionStart: "ExpressionStart",
	ExpressionEnd:   "ExpressionEnd",
	CommentStart:    "CommentStart",
	CommentEnd:      "CommentEnd",
	LeftParen:       "LeftParen",
	RightParen:      "RightParen",
	LeftBracket:     "LeftBracket",
	RightBracket:    "RightBracket",
	LeftBrace:       "LeftBrace",
	RightBrace:      "RightBrace",
	Comma:           "Comma",
	Colon:           "Colon",
	Semicolon:       "Semicolon",
	Dot:             "Dot",
	Pipe:            "Pipe",
}

func (k SeparatorKind) String() string {
	if int(k) < len(separatorNames) {
		return separatorNames[k]
	}
	return "None"
}

// IsBlockDelimiter reports whether k opens or closes a template tag.
func (k SeparatorKind) IsBlockDelimiter() bool {
	return k >= ControlStart && k <= CommentEnd
}
