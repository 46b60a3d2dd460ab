package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelPhase               // commands and directory walks
	LevelDetail              // plus one span per file
	LevelDebug               // plus lexer mode switches
)

var levelNames = [...]string{"off", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts off|phase|detail|debug in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope are recorded at level l.
// Levels and scopes share numbering: LevelPhase keeps ScopeDriver and so on.
func (l Level) ShouldEmit(scope Scope) bool {
	return l > LevelOff && uint8(scope) <= uint8(l)
}

// accepts is the common filter of the concrete tracers. Heartbeats pass
// at every enabled level.
func accepts(l Level, ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return l > LevelOff
	}
	return l.ShouldEmit(ev.Scope)
}
