package diagfmt

import (
	"path/filepath"

	"stub2hdr/internal/source"
)

// DisplayPath formats the path of f according to mode.
func DisplayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 || filepath.IsAbs(f.Path) {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return fs.RelPath(f)
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		rel := fs.RelPath(f)
		if filepath.IsAbs(rel) && len(rel) > autoPathLimit {
			return filepath.Base(rel)
		}
		return rel
	}
}

// validSpan reports whether span refers to a file registered in fs.
func validSpan(fs *source.FileSet, span source.Span) bool {
	return fs != nil && int(span.File) < fs.Len()
}
