package trace

import (
	"time"

	"twig/internal/source"
)

// Kind is the type of an Event.
type Kind uint8

const (
	// KindBegin opens a span.
	KindBegin Kind = iota + 1
	// KindEnd closes a span; Elapsed is set.
	KindEnd
	// KindMode is a lexer template-mode switch; From, To and At are set.
	KindMode
	// KindHeartbeat is emitted periodically while a command runs.
	KindHeartbeat
)

var kindNames = [...]string{
	KindBegin:     "begin",
	KindEnd:       "end",
	KindMode:      "mode",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope orders events from coarse to fine.
type Scope uint8

const (
	// ScopeDriver covers whole CLI commands and directory walks.
	ScopeDriver Scope = iota + 1
	// ScopeFile covers lexing a single source.
	ScopeFile
	// ScopeMode covers template-mode switches inside one source.
	ScopeMode
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeFile:   "file",
	ScopeMode:   "mode",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time    time.Time
	Seq     uint64 // assigned by the tracer that stores or writes the event
	Kind    Kind
	Scope   Scope
	Span    uint64 // 0 for events outside spans
	Parent  uint64
	Name    string // "check", "tokenize_dir", "lex", "mode:expression", ...
	File    string // template label, if the event belongs to one source
	At      *source.Marker
	From    string // previous template mode (KindMode)
	To      string // new template mode (KindMode)
	Detail  string
	Elapsed time.Duration // KindEnd only
	Attrs   map[string]string
}
