package lexer

import (
	"twig/internal/diag"
	"twig/internal/source"
	"twig/internal/token"
	"twig/internal/trace"
)

// TemplateMode is the outer scanning state.
type TemplateMode uint8

const (
	ModeText       TemplateMode = iota // raw text between delimiters
	ModeComment                        // inside {# ... #}
	ModeControl                        // inside {% ... %}
	ModeExpression                     // inside {{ ... }}
)

func (m TemplateMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeComment:
		return "comment"
	case ModeControl:
		return "control"
	case ModeExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// ExprState records what kind of unit the dispatcher produced last inside a block.
// It is reset on every mode switch.
type ExprState uint8

const (
	ExprNone       ExprState = iota // nothing scanned since the block opened
	ExprIdentifier                  // name or keyword
	ExprLiteral                     // number, string or interpolated string
	ExprOperator                    // operator symbol
	ExprSeparator                   // punctuation or block delimiter
)

// Options configures a scan session.
type Options struct {
	Label    string        // attached to every diagnostic
	Reporter diag.Reporter // может быть nil; диагностики всё равно попадают в Result
	Tracer   trace.Tracer  // mode transitions, nil disables
}

// Result is the outcome of one scan.
type Result struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Lexer is a single scan session. It is not safe for concurrent use and
// must not be reused after Run.
type Lexer struct {
	r      *Reader
	buf    runeBuffer
	tokens []token.Token
	diags  []diag.Diagnostic
	mode   TemplateMode
	expr   ExprState
	opener source.Marker  // delimiter that opened the current comment/block
	hold   []token.Trivia // накопленные leading trivia
	opts   Options
	ran    bool
}

// New creates a session over file. The label defaults to the file path.
func New(file *source.File, opts Options) *Lexer {
	if opts.Label == "" && file != nil {
		opts.Label = file.Path
	}
	var src []rune
	if file != nil {
		src = file.Runes()
	}
	return newLexer(src, opts)
}

func newLexer(src []rune, opts Options) *Lexer {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Lexer{
		r:    NewReader(src),
		mode: ModeText,
		opts: opts,
	}
}

// Lex scans a template source and returns all tokens and diagnostics.
func Lex(src, label string) Result {
	return newLexer([]rune(src), Options{Label: label}).Run()
}

// LexExpression scans a bare expression fragment without template delimiters.
func LexExpression(src, label string) Result {
	return newLexer([]rune(src), Options{Label: label}).RunExpression()
}

// Run scans the whole input in template mode.
func (lx *Lexer) Run() Result {
	if lx.ran {
		return lx.result()
	}
	lx.ran = true
	lx.r.Next()
	for !lx.r.EOF() || lx.mode != ModeText {
		closed := true
		switch lx.mode {
		case ModeText:
			lx.scanText(&lx.tokens)
		case ModeComment:
			closed = lx.scanComment(&lx.tokens)
		case ModeControl, ModeExpression:
			closed = lx.scanBlock(&lx.tokens)
		}
		// незакрытый регион уже отрепорчен
		if !closed {
			break
		}
	}
	return lx.result()
}

// RunExpression scans the whole input as one expression.
func (lx *Lexer) RunExpression() Result {
	if lx.ran {
		return lx.result()
	}
	lx.ran = true
	lx.setMode(ModeExpression)
	lx.r.Next()
	for !lx.r.EOF() {
		lx.scanSubExpr(&lx.tokens)
	}
	return lx.result()
}

// Mode returns the current template mode.
func (lx *Lexer) Mode() TemplateMode { return lx.mode }

// ExprState returns the kind of the last unit scanned inside a block.
func (lx *Lexer) ExprState() ExprState { return lx.expr }

func (lx *Lexer) result() Result {
	return Result{Tokens: lx.tokens, Diagnostics: lx.diags}
}

func (lx *Lexer) setMode(m TemplateMode) {
	if lx.mode == m {
		return
	}
	from := lx.mode
	lx.mode = m
	lx.expr = ExprNone
	if t := lx.opts.Tracer; t.Enabled() {
		trace.ModeChange(t, lx.opts.Label, from.String(), m.String(), lx.r.Position())
	}
}

// emit appends tok to sink, attaching pending trivia.
func (lx *Lexer) emit(sink *[]token.Token, tok token.Token) {
	if len(lx.hold) > 0 {
		tok.Leading = lx.hold
		lx.hold = nil
	}
	switch tok.Kind {
	case token.Identifier, token.Keyword:
		lx.expr = ExprIdentifier
	case token.Literal, token.InterpolatedString:
		lx.expr = ExprLiteral
	case token.Operator:
		lx.expr = ExprOperator
	case token.Separator:
		lx.expr = ExprSeparator
	}
	*sink = append(*sink, tok)
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, value []rune) {
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Value: value})
}

func (lx *Lexer) errorf(code diag.Code, at source.Marker, msg string) {
	d := diag.NewError(code, lx.opts.Label, &at, msg)
	lx.diags = append(lx.diags, d)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d.Code, d.Severity, d.Label, &at, d.Message)
	}
}
