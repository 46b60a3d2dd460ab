package diag

import "twig/internal/source"

func New(sev Severity, code Code, label string, at *source.Marker, msg string) Diagnostic {
	d := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Label:    label,
	}
	if at != nil {
		d.Marker = *at
		d.HasMarker = true
	}
	return d
}

func NewError(code Code, label string, at *source.Marker, msg string) Diagnostic {
	return New(SevError, code, label, at, msg)
}
