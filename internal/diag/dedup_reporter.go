package diag

import "twig/internal/source"

type dedupKey struct {
	code   Code
	sev    Severity
	label  string
	marked bool
	index  uint32
	msg    string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, position and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, label string, at *source.Marker, msg string) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, label: label, msg: msg}
	if at != nil {
		key.marked = true
		key.index = at.Index
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, label, at, msg)
	}
}
