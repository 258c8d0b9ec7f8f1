// Package commands contains the traversal and rendering logic behind each command.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// warningSkipSubdirectoryFormat is used when a subdirectory cannot be listed.
	warningSkipSubdirectoryFormat = "Skipping subdirectory %s due to error: %v"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// pathSeparator suffixes directory names in rendered lines.
	pathSeparator = string(os.PathSeparator)
)

// BuildTree renders the directory tree rooted at rootDirectoryPath as an
// ordered sequence of lines: a head line naming the root, one line per kept
// entry, and one closing line per rendered directory. The root must be
// listable; deeper directories that cannot be listed are logged and rendered
// as if empty.
func (treeBuilder *TreeBuilder) BuildTree(rootDirectoryPath string) ([]string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootEntries, listError := listFilteredEntries(absoluteRootPath, "", treeBuilder.Options)
	if listError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, listError)
	}

	treeLines := []string{filepath.Base(absoluteRootPath) + pathSeparator}
	treeLines = append(treeLines, treeBuilder.renderEntries(absoluteRootPath, "", rootEntries, "", 0)...)
	return treeLines, nil
}

// renderEntries renders one directory's filtered entries. Directories sort
// before files, stable within each group. Each directory entry contributes
// its own line, its recursively rendered children, and a closing line equal
// to the extended prefix with trailing spaces stripped.
func (treeBuilder *TreeBuilder) renderEntries(directoryPath string, relativeDirectory string, directoryEntries []os.DirEntry, prefix string, depth int) []string {
	orderedEntries := directoriesFirst(directoryEntries)

	var renderedLines []string
	for entryIndex, directoryEntry := range orderedEntries {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if entryIndex == len(orderedEntries)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}

		entryName := directoryEntry.Name()
		if !directoryEntry.IsDir() {
			renderedLines = append(renderedLines, prefix+connector+entryName)
			continue
		}

		renderedLines = append(renderedLines, prefix+connector+entryName+pathSeparator)
		childLines := treeBuilder.renderDirectory(filepath.Join(directoryPath, entryName), joinRelativePath(relativeDirectory, entryName), childPrefix, depth+1)
		renderedLines = append(renderedLines, childLines...)
		renderedLines = append(renderedLines, strings.TrimRight(childPrefix, " "))
	}
	return renderedLines
}

// renderDirectory renders the children of one directory entry. Past the depth
// limit the directory renders as if empty; a listing failure is downgraded to
// a warning so the rest of the walk survives.
func (treeBuilder *TreeBuilder) renderDirectory(directoryPath string, relativeDirectory string, prefix string, depth int) []string {
	if treeBuilder.Options.MaxDepth >= 0 && depth > treeBuilder.Options.MaxDepth {
		return nil
	}
	directoryEntries, listError := listFilteredEntries(directoryPath, relativeDirectory, treeBuilder.Options)
	if listError != nil {
		treeBuilder.Logger.Warn(fmt.Sprintf(warningSkipSubdirectoryFormat, directoryPath, listError))
		return nil
	}
	return treeBuilder.renderEntries(directoryPath, relativeDirectory, directoryEntries, prefix, depth)
}

// directoriesFirst partitions entries so directories precede files while
// preserving listing order within each group.
func directoriesFirst(directoryEntries []os.DirEntry) []os.DirEntry {
	orderedEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			orderedEntries = append(orderedEntries, directoryEntry)
		}
	}
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			orderedEntries = append(orderedEntries, directoryEntry)
		}
	}
	return orderedEntries
}
