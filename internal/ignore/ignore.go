// Package ignore compiles gitignore-style pattern lists into a matcher shared
// by the tree and combine commands.
package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

const directorySuffix = "/"

// Spec answers whether a path relative to the traversal root is excluded.
// Matching is case-sensitive and follows gitignore semantics: later patterns
// override earlier ones, and "!" prefixed patterns re-include paths.
type Spec struct {
	matcher  *gitignore.GitIgnore
	patterns []string
}

// CompileSpec compiles the ordered pattern lines into a Spec. Blank lines are
// dropped; pattern order is preserved.
func CompileSpec(patternLines []string) *Spec {
	cleanedPatterns := make([]string, 0, len(patternLines))
	for _, patternLine := range patternLines {
		trimmedPattern := strings.TrimSpace(patternLine)
		if trimmedPattern == "" {
			continue
		}
		cleanedPatterns = append(cleanedPatterns, trimmedPattern)
	}
	return &Spec{
		matcher:  gitignore.CompileIgnoreLines(cleanedPatterns...),
		patterns: cleanedPatterns,
	}
}

// Excluded reports whether relativePath is excluded by the compiled patterns.
// The path must be relative to the traversal root. Directories are also
// tested with a trailing slash so directory patterns such as "build/" match
// the directory entry itself.
func (spec *Spec) Excluded(relativePath string, isDirectory bool) bool {
	if spec == nil || spec.matcher == nil {
		return false
	}
	normalizedPath := filepath.ToSlash(relativePath)
	if spec.matcher.MatchesPath(normalizedPath) {
		return true
	}
	if isDirectory && spec.matcher.MatchesPath(normalizedPath+directorySuffix) {
		return true
	}
	return false
}

// Patterns returns a copy of the compiled pattern lines in order.
func (spec *Spec) Patterns() []string {
	if spec == nil {
		return nil
	}
	return append([]string(nil), spec.patterns...)
}
