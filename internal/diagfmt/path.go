package diagfmt

import (
	"path/filepath"
	"strings"

	"lupin/internal/source"
)

// autoBasenameDepth: absolute paths with more segments collapse to a basename.
const autoBasenameDepth = 4

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return fs.DisplayPath(id)
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if fs.BaseDir() != "" {
			return fs.DisplayPath(id)
		}
		if filepath.IsAbs(f.Path) && strings.Count(filepath.ToSlash(f.Path), "/") > autoBasenameDepth {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}
