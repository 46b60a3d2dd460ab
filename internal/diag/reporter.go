package diag

import "twig/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр дублей).
type Reporter interface {
	Report(code Code, sev Severity, label string, at *source.Marker, msg string)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     Diagnostic{Severity: sev, Code: code, Message: msg},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, msg)
}

// In sets the source label.
func (b *ReportBuilder) In(label string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Label = label
	return b
}

// At attaches a position.
func (b *ReportBuilder) At(m source.Marker) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Marker = m
	b.diag.HasMarker = true
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		var at *source.Marker
		if b.diag.HasMarker {
			m := b.diag.Marker
			at = &m
		}
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Label, at, b.diag.Message)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, label string, at *source.Marker, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, label, at, msg))
}
