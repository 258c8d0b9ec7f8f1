// Package output writes the byte-exact document blocks produced by the commands.
package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	instructionsHeader = "# Instructions:\n"
	structureHeader    = "# Project Structure:\n"

	// separatorRule is the 80-character rule between document sections.
	separatorRule = "================================================================================"
	commentPrefix = "# "
)

// DefaultInstructions opens a combined document when no instructions are configured.
const DefaultInstructions = `
You are a senior software engineer conducting a thorough review of the
provided codebase. The project structure and the contents of every file
follow below. Complete the review as follows:

    Issue Identification: Work through the code and identify problems with
    code quality, modularity, efficiency, and error handling. For each issue,
    explain briefly why it is problematic.

    Code Improvements: Propose concrete corrections for each issue, with code
    blocks illustrating the suggested changes.

    Summary of Changes: Summarize the suggested changes and the rationale
    behind each one.

    Self-Critique: Critique your own proposals, noting trade-offs and
    alternative approaches you considered.

    Final Report: Produce a report containing the summary, the critique, and
    every modified file with the proposed changes incorporated, clearly
    labeled.
`

// WriteInstructionsBlock writes the instructions section followed by the
// separator rule that opens a combined document. Leading and trailing
// whitespace around the instructions text is trimmed.
func WriteInstructionsBlock(writer io.Writer, instructions string) error {
	_, writeError := fmt.Fprintf(writer, "%s%s\n\n%s%s\n\n", instructionsHeader, strings.TrimSpace(instructions), commentPrefix, separatorRule)
	return writeError
}

// WriteStructureBlock writes the rendered tree lines under the structure header.
func WriteStructureBlock(writer io.Writer, treeLines []string) error {
	_, writeError := fmt.Fprintf(writer, "%s%s\n\n", structureHeader, strings.Join(treeLines, "\n"))
	return writeError
}

// WriteFileBlock writes one file's three-line delimiter block followed by its content.
func WriteFileBlock(writer io.Writer, relativePath string, content string) error {
	_, writeError := fmt.Fprintf(writer, "\n%s%s\n%s%s\n%s%s\n\n%s", commentPrefix, separatorRule, commentPrefix, relativePath, commentPrefix, separatorRule, content)
	return writeError
}

// WriteTreeLines writes one newline-terminated line per tree entry.
func WriteTreeLines(writer io.Writer, treeLines []string) error {
	for _, treeLine := range treeLines {
		if _, writeError := fmt.Fprintln(writer, treeLine); writeError != nil {
			return writeError
		}
	}
	return nil
}
