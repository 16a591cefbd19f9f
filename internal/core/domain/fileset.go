package domain

import (
	"slices"
	"strings"
)

// FileSet is an ordered list of file paths.
type FileSet []string

// Sorted returns a lexicographically sorted copy of the set.
func (s FileSet) Sorted() FileSet {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

// HasExtension returns a predicate matching paths with any of the given
// extensions. Extensions include the leading dot.
func HasExtension(exts ...string) func(string) bool {
	return func(path string) bool {
		for _, ext := range exts {
			if len(path) > len(ext) && strings.HasSuffix(path, ext) {
				return true
			}
		}
		return false
	}
}
