// Package config loads ignore files and application configuration defaults.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/embedhead-io/tree-cli/internal/utils"
)

const (
	// commentPrefix marks ignore-file lines that carry no pattern.
	commentPrefix = "#"
	// warningCloseIgnoreFileFormat is used when the ignore file handle cannot be closed.
	warningCloseIgnoreFileFormat = "Warning: failed to close %s: %v\n"
)

// LoadIgnorePatterns reads the named ignore file inside rootDirectory and
// returns its pattern lines in file order. A missing file yields no patterns
// and no error; any other I/O failure is returned so exclusion semantics are
// never silently wrong. Blank lines and comment lines are dropped; negation
// lines are kept.
//
// #nosec G304
func LoadIgnorePatterns(rootDirectory string, ignoreFileName string) ([]string, error) {
	ignoreFilePath := filepath.Join(rootDirectory, ignoreFileName)
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file %s: %w", ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseIgnoreFileFormat, ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading ignore file %s: %w", ignoreFilePath, scanError)
	}
	return patternLines, nil
}

// MergeExclusionPatterns appends command-line exclusion patterns to the loaded
// file patterns, dropping blanks and duplicates while preserving order. Order
// matters: appended patterns participate in negation the same way trailing
// ignore-file lines would.
func MergeExclusionPatterns(filePatterns []string, exclusionPatterns []string) []string {
	mergedPatterns := utils.DeduplicatePatterns(filePatterns)
	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(mergedPatterns, trimmedPattern) {
			mergedPatterns = append(mergedPatterns, trimmedPattern)
		}
	}
	return mergedPatterns
}
