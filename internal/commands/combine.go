package commands

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/embedhead-io/tree-cli/internal/output"
	"github.com/embedhead-io/tree-cli/internal/types"
	"github.com/embedhead-io/tree-cli/internal/utils"
)

const (
	// errorReadFileFormat is used when a file cannot be read during combining.
	errorReadFileFormat = "Failed to read file %s: %v"
)

// Combiner concatenates the filtered contents of a project into one document.
// The document opens with an instructions block and the rendered tree; every
// kept file follows behind a delimiter block naming its relative path.
type Combiner struct {
	// Instructions replaces the default instructions block when non-empty.
	Instructions string
	// Options select the files to combine; both the embedded tree and the
	// file walk use them, so the two can never disagree on inclusion.
	Options types.WalkOptions
	Logger  *zap.Logger
}

// Combine writes the combined document for rootDirectory to destination.
// Unreadable files are logged, counted as skipped, and left out of the
// document; write failures abort the run.
func (combiner *Combiner) Combine(rootDirectory string, destination io.Writer) (types.CombineStats, error) {
	treeBuilder := &TreeBuilder{Options: combiner.Options, Logger: combiner.Logger}
	treeLines, buildError := treeBuilder.BuildTree(rootDirectory)
	if buildError != nil {
		return types.CombineStats{}, buildError
	}

	instructionsText := combiner.Instructions
	if instructionsText == "" {
		instructionsText = output.DefaultInstructions
	}
	if writeError := output.WriteInstructionsBlock(destination, instructionsText); writeError != nil {
		return types.CombineStats{}, writeError
	}
	if writeError := output.WriteStructureBlock(destination, treeLines); writeError != nil {
		return types.CombineStats{}, writeError
	}

	var combineStats types.CombineStats
	walkError := WalkFiles(rootDirectory, combiner.Options, combiner.Logger, func(relativePath string, absolutePath string) error {
		fileBytes, readError := os.ReadFile(absolutePath)
		if readError != nil {
			combiner.Logger.Error(fmt.Sprintf(errorReadFileFormat, absolutePath, readError))
			combineStats.Skipped++
			return nil
		}
		if writeError := output.WriteFileBlock(destination, relativePath, utils.DecodeText(fileBytes)); writeError != nil {
			return writeError
		}
		combineStats.Files++
		combineStats.SizeBytes += int64(len(fileBytes))
		return nil
	})
	if walkError != nil {
		return combineStats, walkError
	}
	return combineStats, nil
}
