package driver

import (
	"fmt"
	"strings"

	"twig/internal/diag"
	"twig/internal/observ"
)

// AppendTimings records a timer report as an info diagnostic, so JSON
// consumers receive timings next to the lexer findings. The bag grows past
// its limit if it is already full.
func AppendTimings(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	parts := make([]string, 0, len(report.Phases))
	for _, p := range report.Phases {
		parts = append(parts, fmt.Sprintf("%s %.2f ms", p.Name, p.DurationMS))
	}
	msg := fmt.Sprintf("timings: total %.2f ms", report.TotalMS)
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, path, nil, msg)
	if bag.Len() < int(bag.Cap()) {
		bag.Add(entry)
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
