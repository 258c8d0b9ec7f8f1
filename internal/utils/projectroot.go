package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// errorNoProjectRootFormat reports that no project marker was found while walking upward.
const errorNoProjectRootFormat = "no project root found in or above %s"

// DiscoverProjectRoot walks upward from startDirectory until it finds a
// directory containing a Git directory or a Git ignore file, and returns that
// directory. The Git entry may be a file or a directory; worktrees and
// submodules store a pointer file in place of the directory.
func DiscoverProjectRoot(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absolutePathError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		if _, statError := os.Stat(gitPath); statError == nil {
			return currentDirectory, nil
		}
		gitIgnorePath := filepath.Join(currentDirectory, GitIgnoreFileName)
		if _, statError := os.Stat(gitIgnorePath); statError == nil {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(errorNoProjectRootFormat, absoluteStartDirectory)
}
