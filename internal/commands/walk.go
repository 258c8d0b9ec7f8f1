package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/embedhead-io/tree-cli/internal/types"
)

const (
	// hiddenNamePrefix marks entries excluded unless IncludeHidden is set.
	hiddenNamePrefix = "."
	// pycacheDirectoryName is excluded from every walk regardless of ignore patterns.
	pycacheDirectoryName = "__pycache__"
)

// listFilteredEntries lists the immediate children of directoryPath and drops
// the ones the walk options exclude. Filters apply in a fixed order: hidden
// names, ignore-spec matches, non-directories when DirectoriesOnly, and the
// literal __pycache__ directory. Surviving entries keep directory-listing order.
func listFilteredEntries(directoryPath string, relativeDirectory string, options types.WalkOptions) ([]os.DirEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	filteredEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if !options.IncludeHidden && strings.HasPrefix(entryName, hiddenNamePrefix) {
			continue
		}
		if options.IgnoreSpec.Excluded(joinRelativePath(relativeDirectory, entryName), directoryEntry.IsDir()) {
			continue
		}
		if options.DirectoriesOnly && !directoryEntry.IsDir() {
			continue
		}
		if directoryEntry.IsDir() && entryName == pycacheDirectoryName {
			continue
		}
		filteredEntries = append(filteredEntries, directoryEntry)
	}
	return filteredEntries, nil
}

// joinRelativePath extends a slash-form relative directory with one entry name.
func joinRelativePath(relativeDirectory string, entryName string) string {
	if relativeDirectory == "" {
		return entryName
	}
	return relativeDirectory + "/" + entryName
}

// WalkFiles visits every file the options select, depth-first: each
// directory's files in listing order, then its subdirectories in listing
// order. The root directory must be listable; unlistable subdirectories are
// logged and skipped. Errors returned by visit abort the walk.
func WalkFiles(rootDirectory string, options types.WalkOptions, logger *zap.Logger, visit func(relativePath string, absolutePath string) error) error {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}
	rootEntries, listError := listFilteredEntries(absoluteRootPath, "", options)
	if listError != nil {
		return listError
	}
	return walkFilteredFiles(absoluteRootPath, "", rootEntries, options, logger, visit)
}

// walkFilteredFiles visits the files among directoryEntries, then descends
// into the subdirectories. Only visit errors propagate; a subdirectory that
// cannot be listed is logged and dropped from the walk.
func walkFilteredFiles(directoryPath string, relativeDirectory string, directoryEntries []os.DirEntry, options types.WalkOptions, logger *zap.Logger, visit func(string, string) error) error {
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		relativePath := joinRelativePath(relativeDirectory, directoryEntry.Name())
		if visitError := visit(relativePath, filepath.Join(directoryPath, directoryEntry.Name())); visitError != nil {
			return visitError
		}
	}
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		childRelative := joinRelativePath(relativeDirectory, directoryEntry.Name())
		childEntries, listError := listFilteredEntries(childPath, childRelative, options)
		if listError != nil {
			logger.Warn(fmt.Sprintf(warningSkipSubdirectoryFormat, childPath, listError))
			continue
		}
		if walkError := walkFilteredFiles(childPath, childRelative, childEntries, options, logger, visit); walkError != nil {
			return walkError
		}
	}
	return nil
}
