// Package pathdisplay converts between the absolute paths the loader walks
// and the relative paths shown in consolidated output and diagnostics,
// adapted from the teacher's pathutil.ToRelative boundary convention:
// internal representation stays absolute, display is relative to a root.
package pathdisplay

import (
	"path/filepath"
	"strings"
)

// Relative converts absPath to a path relative to root (both may themselves
// be relative to the working directory; they are resolved to absolute form
// before comparison). It falls back to absPath unchanged if the two are not
// comparable (e.g. different filesystem roots on Windows) or if absPath lies
// outside root.
func Relative(absPath, root string) string {
	if absPath == "" || root == "" {
		return absPath
	}

	absA, errA := filepath.Abs(absPath)
	absR, errR := filepath.Abs(root)
	if errA != nil || errR != nil {
		return absPath
	}

	rel, err := filepath.Rel(absR, absA)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(rel, "..") {
		return absPath
	}
	return filepath.ToSlash(rel)
}
