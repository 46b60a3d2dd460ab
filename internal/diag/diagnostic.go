package diag

import (
	"twig/internal/source"
)

// Diagnostic is a recorded finding with an optional source position.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Message   string
	Label     string // source label, usually the file path
	Marker    source.Marker
	HasMarker bool
}

// Location returns the marker and whether the diagnostic has one.
func (d Diagnostic) Location() (source.Marker, bool) {
	return d.Marker, d.HasMarker
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	prefix := d.Label
	if d.HasMarker {
		if prefix != "" {
			prefix += ":"
		}
		prefix += d.Marker.String()
	}
	if prefix == "" {
		return d.Message
	}
	return prefix + ": " + d.Message
}
