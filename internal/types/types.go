// Package types defines cross-package data structures used by the tree-cli commands.
package types

import "github.com/embedhead-io/tree-cli/internal/ignore"

// UnlimitedDepth disables depth limiting during traversal.
const UnlimitedDepth = -1

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// WalkOptions controls which directory entries a filtered walk keeps.
type WalkOptions struct {
	// DirectoriesOnly drops file entries, keeping only directories.
	DirectoriesOnly bool
	// IncludeHidden keeps entries whose names start with a dot.
	IncludeHidden bool
	// MaxDepth limits recursion; UnlimitedDepth means no limit. Depth 0 is
	// the root's immediate children.
	MaxDepth int
	// IgnoreSpec excludes entries by root-relative path. A nil spec excludes nothing.
	IgnoreSpec *ignore.Spec
}

// DefaultWalkOptions is the selection the combiner uses: hidden entries
// excluded, every file type kept, unlimited depth.
func DefaultWalkOptions(ignoreSpec *ignore.Spec) WalkOptions {
	return WalkOptions{
		MaxDepth:   UnlimitedDepth,
		IgnoreSpec: ignoreSpec,
	}
}

// CombineStats captures aggregate information about one combine run.
type CombineStats struct {
	Files     int
	SizeBytes int64
	Skipped   int
	Tokens    int
	Model     string
}
