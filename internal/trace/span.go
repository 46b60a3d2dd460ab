package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open operation. A nil or disabled Span is safe to use; its
// methods do nothing.
type Span struct {
	tracer  Tracer
	id      uint64 // 0 when the span's scope was filtered out
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	attrs   map[string]string
}

// Begin opens a root span.
func Begin(t Tracer, scope Scope, name string) *Span {
	return begin(t, scope, name, 0, "")
}

// Child opens a span under s, on the same tracer. Children of a filtered
// span are still recorded if their own scope passes.
func (s *Span) Child(scope Scope, name string) *Span {
	if s == nil {
		return begin(Nop, scope, name, 0, "")
	}
	return begin(s.tracer, scope, name, s.id, s.file)
}

func begin(t Tracer, scope Scope, name string, parent uint64, file string) *Span {
	if t == nil {
		t = Nop
	}
	s := &Span{tracer: t, parent: parent, scope: scope, name: name, file: file}
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return s
	}
	s.id = spanCounter.Add(1)
	s.started = time.Now()
	t.Emit(&Event{
		Time:   s.started,
		Kind:   KindBegin,
		Scope:  scope,
		Span:   s.id,
		Parent: parent,
		Name:   name,
		File:   file,
	})
	return s
}

// ForFile sets the template label reported by the end event and by children.
func (s *Span) ForFile(label string) *Span {
	if s != nil {
		s.file = label
	}
	return s
}

// Attr adds a key/value pair to the end event.
func (s *Span) Attr(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.attrs == nil {
		s.attrs = make(map[string]string, 2)
	}
	s.attrs[key] = value
	return s
}

// ID returns the span ID, 0 for spans that are not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	now := time.Now()
	elapsed := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:    now,
		Kind:    KindEnd,
		Scope:   s.scope,
		Span:    s.id,
		Parent:  s.parent,
		Name:    s.name,
		File:    s.file,
		Detail:  detail,
		Elapsed: elapsed,
		Attrs:   s.attrs,
	})
	return elapsed
}
