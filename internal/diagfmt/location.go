package diagfmt

import (
	"twig/internal/source"
)

// displayPath formats a diagnostic label. Labels that are not files of fs
// (expression fragments, stdin) are printed unchanged.
func displayPath(label string, fs *source.FileSet, mode PathMode) string {
	if fs == nil || label == "" {
		return label
	}
	f, ok := fs.GetByPath(label)
	if !ok {
		return label
	}
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath(mode.String(), "")
	}
}

// sourceFile returns the file backing label, if any.
func sourceFile(label string, fs *source.FileSet) *source.File {
	if fs == nil || label == "" {
		return nil
	}
	f, ok := fs.GetByPath(label)
	if !ok {
		return nil
	}
	return f
}
