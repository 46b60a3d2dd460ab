package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структурные: незакрытые конструкции, регион дальше не сканируется
	LexUnterminatedComment       Code = 1001
	LexUnterminatedBlock         Code = 1002
	LexUnterminatedString        Code = 1003
	LexUnterminatedIdentifier    Code = 1004
	LexUnterminatedInterpolation Code = 1005
	LexUnterminatedInlineComment Code = 1006

	// Лексические: прерывают только текущую единицу
	LexBadNumber       Code = 1101
	LexInvalidOperator Code = 1102
	LexUnknownChar     Code = 1103
	LexBadHexEscape    Code = 1104

	// I/O
	IOLoadFileError Code = 4001
	IOWalkDirError  Code = 4002

	// Project configuration
	PrjBadConfig Code = 5001

	// Observability
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                  "Unknown error",
	LexUnterminatedComment:       "Unterminated comment block",
	LexUnterminatedBlock:         "Unterminated control or expression block",
	LexUnterminatedString:        "Unterminated string literal",
	LexUnterminatedIdentifier:    "Unterminated identifier",
	LexUnterminatedInterpolation: "Unterminated string interpolation expression",
	LexUnterminatedInlineComment: "Unterminated inline comment",
	LexBadNumber:                 "Invalid number literal",
	LexInvalidOperator:           "Invalid operator",
	LexUnknownChar:               "Unexpected character",
	LexBadHexEscape:              "Invalid hex escape sequence",
	IOLoadFileError:              "I/O load file error",
	IOWalkDirError:               "I/O directory walk error",
	PrjBadConfig:                 "Invalid project configuration",
	ObsTimings:                   "Timing report",
}

// Class groups codes by how the lexer recovers from them.
type Class uint8

const (
	ClassOther Class = iota
	// ClassStructural halts scanning of the enclosing region.
	ClassStructural
	// ClassLexical aborts only the current lexical unit.
	ClassLexical
)

func (c Class) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassLexical:
		return "lexical"
	default:
		return "other"
	}
}

// Class returns the recovery class of c.
func (c Code) Class() Class {
	switch ic := int(c); {
	case ic > 1000 && ic < 1100:
		return ClassStructural
	case ic > 1100 && ic < 1200:
		return ClassLexical
	}
	return ClassOther
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
