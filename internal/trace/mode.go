package trace

import (
	"time"

	"twig/internal/source"
)

// ModeChange records a lexer template-mode switch in file at position at.
func ModeChange(t Tracer, file, from, to string, at source.Marker) {
	if t == nil || !t.Level().ShouldEmit(ScopeMode) {
		return
	}
	t.Emit(&Event{
		Time:  time.Now(),
		Kind:  KindMode,
		Scope: ScopeMode,
		Name:  "mode:" + to,
		File:  file,
		At:    &at,
		From:  from,
		To:    to,
	})
}
