// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/embedhead-io/tree-cli/internal/commands"
	"github.com/embedhead-io/tree-cli/internal/config"
	"github.com/embedhead-io/tree-cli/internal/ignore"
	"github.com/embedhead-io/tree-cli/internal/output"
	"github.com/embedhead-io/tree-cli/internal/services/clipboard"
	"github.com/embedhead-io/tree-cli/internal/tokenizer"
	"github.com/embedhead-io/tree-cli/internal/types"
	"github.com/embedhead-io/tree-cli/internal/utils"
)

const (
	rootUse              = "tree-cli"
	rootShortDescription = "tree-cli command line interface"
	rootLongDescription  = `tree-cli renders a project as an ASCII directory tree and combines its
source files into a single reviewable document.
Use tree to print the structure, combine to produce the document, and init to
write a starter configuration file. Use --version to print the application version.`

	versionFlagName        = "version"
	versionTemplate        = "tree-cli version: %s\n"
	versionFlagDescription = "display application version"

	configFlagName        = "config"
	configFlagDescription = "configuration file path"

	treeUse                 = "tree"
	combineUse              = "combine"
	initUse                 = "init"
	treeAlias               = "t"
	combineAlias            = "c"
	treeShortDescription    = "display directory tree (" + treeAlias + ")"
	combineShortDescription = "combine source files into one document (" + combineAlias + ")"
	initShortDescription    = "write a starter configuration file"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Render the project structure as an ASCII tree.
Hidden entries, ignore-file matches, and __pycache__ directories are excluded.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the current project
  tree-cli tree

  # Limit depth and include hidden entries
  tree-cli tree --max-depth 2 --include-hidden`

	// combineLongDescription provides detailed help for the combine command.
	combineLongDescription = `Concatenate every kept file into one delimited document prefixed with
review instructions and the rendered project tree.`
	// combineUsageExample demonstrates combine command usage.
	combineUsageExample = `  # Combine the current project into ./combined_code.txt
  tree-cli combine

  # Exclude logs and copy the document to the clipboard
  tree-cli combine -e '*.log' --copy`

	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write a configuration file preloaded with the built-in defaults.
The local file lives in the working directory; --global writes it under the
home directory instead.`

	rootFlagName                   = "root"
	rootFlagShorthand              = "r"
	rootFlagDescription            = "project root directory (default: discovered from the working directory)"
	outputFlagName                 = "output"
	outputFlagShorthand            = "o"
	outputFlagDescription          = "write the tree to a file instead of stdout"
	outputDirectoryFlagName        = "output-dir"
	outputDirectoryFlagShorthand   = "o"
	outputDirectoryFlagDescription = "directory receiving " + combinedOutputFileName
	dirOnlyFlagName                = "dir-only"
	dirOnlyFlagShorthand           = "d"
	dirOnlyFlagDescription         = "list directories only"
	includeHiddenFlagName          = "include-hidden"
	includeHiddenFlagShorthand     = "i"
	includeHiddenFlagDescription   = "include hidden files and directories"
	maxDepthFlagName               = "max-depth"
	maxDepthFlagShorthand          = "l"
	maxDepthFlagDescription        = "maximum tree depth; negative means unlimited"
	ignoreFileFlagName             = "ignore-file"
	ignoreFileFlagDescription      = "ignore file name resolved against the project root"
	exclusionFlagName              = "exclude"
	exclusionFlagShorthand         = "e"
	exclusionFlagDescription       = "exclude path pattern"
	copyFlagName                   = "copy"
	copyFlagDescription            = "copy the output to the clipboard"
	tokensFlagName                 = "tokens"
	tokensFlagDescription          = "include a token count of the combined document"
	modelFlagName                  = "model"
	modelFlagDescription           = "tokenizer model to use for token counting"
	globalFlagName                 = "global"
	globalFlagDescription          = "write the global configuration file"
	forceFlagName                  = "force"
	forceFlagDescription           = "overwrite an existing configuration file"

	combinedOutputFileName = "combined_code.txt"
	defaultOutputDirectory = "."

	// errorRootMissingFormat reports a root path that does not exist.
	errorRootMissingFormat = "root path %s does not exist"
	// errorRootNotDirectoryFormat reports a root path that is not a directory.
	errorRootNotDirectoryFormat = "root path %s is not a directory"
	// errorStatRootFormat reports failure to stat the root path.
	errorStatRootFormat = "stat root path %s: %w"
	// errorAbsoluteRootFormat reports failure to resolve the root path.
	errorAbsoluteRootFormat = "resolve root path %s: %w"
	// errorCreateOutputFormat reports failure to create the output file.
	errorCreateOutputFormat = "create output file %s: %w"
	// errorWriteOutputFormat reports failure to write the output file.
	errorWriteOutputFormat = "write output file %s: %w"

	// warningClipboardCopyFormat is logged when clipboard copying fails.
	warningClipboardCopyFormat = "Warning: failed to copy output to clipboard: %v"
	// warningTokenCountFormat is logged when token counting fails.
	warningTokenCountFormat = "Warning: failed to count tokens: %v"
	// warningSkippedFilesFormat summarizes files left out of the document.
	warningSkippedFilesFormat = "Skipped %d unreadable files"

	// infoTreeWrittenFormat announces the tree output file.
	infoTreeWrittenFormat = "Tree written to %s"
	// infoCombineSuccessFormat announces the combined document.
	infoCombineSuccessFormat = "All code has been combined into %s (%d files, %s)"
	// infoTokenCountFormat reports the token count of the combined document.
	infoTokenCountFormat = "Token count (%s): %d"
	infoClipboardCopiedMessage = "Copied output to clipboard"
	// infoConfigWrittenFormat announces the initialized configuration file.
	infoConfigWrittenFormat = "Configuration written to %s"
)

// Execute runs the tree-cli application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool
	var configurationFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(logger, &configurationFilePath),
		createCombineCommand(logger, &configurationFilePath),
		createInitCommand(logger),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// treeFlagValues stores flag targets for the tree command.
type treeFlagValues struct {
	rootDirectory     string
	outputPath        string
	directoriesOnly   bool
	includeHidden     bool
	maxDepth          int
	ignoreFileName    string
	exclusionPatterns []string
	copyToClipboard   bool
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(logger *zap.Logger, configurationFilePath *string) *cobra.Command {
	var flagValues treeFlagValues

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runTree(command, flagValues, *configurationFilePath, logger)
		},
	}

	treeCommand.Flags().StringVarP(&flagValues.rootDirectory, rootFlagName, rootFlagShorthand, "", rootFlagDescription)
	treeCommand.Flags().StringVarP(&flagValues.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &flagValues.directoriesOnly, dirOnlyFlagName, dirOnlyFlagShorthand, false, dirOnlyFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &flagValues.includeHidden, includeHiddenFlagName, includeHiddenFlagShorthand, false, includeHiddenFlagDescription)
	treeCommand.Flags().IntVarP(&flagValues.maxDepth, maxDepthFlagName, maxDepthFlagShorthand, types.UnlimitedDepth, maxDepthFlagDescription)
	treeCommand.Flags().StringVar(&flagValues.ignoreFileName, ignoreFileFlagName, utils.GitIgnoreFileName, ignoreFileFlagDescription)
	treeCommand.Flags().StringArrayVarP(&flagValues.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &flagValues.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	return treeCommand
}

// runTree renders the tree for the resolved root and writes it to the
// requested destination.
func runTree(command *cobra.Command, flagValues treeFlagValues, configurationFilePath string, logger *zap.Logger) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: configurationFilePath})
	if configurationError != nil {
		return configurationError
	}
	treeConfiguration := applicationConfiguration.Tree

	ignoreFileName := resolveStringSetting(command, ignoreFileFlagName, treeConfiguration.IgnoreFile, flagValues.ignoreFileName, utils.GitIgnoreFileName)
	includeHidden := resolveBoolSetting(command, includeHiddenFlagName, treeConfiguration.IncludeHidden, flagValues.includeHidden, false)
	directoriesOnly := resolveBoolSetting(command, dirOnlyFlagName, treeConfiguration.DirectoriesOnly, flagValues.directoriesOnly, false)
	maxDepth := resolveIntSetting(command, maxDepthFlagName, treeConfiguration.MaxDepth, flagValues.maxDepth, types.UnlimitedDepth)
	copyToClipboard := resolveBoolSetting(command, copyFlagName, treeConfiguration.Copy, flagValues.copyToClipboard, false)

	rootDirectory, rootError := resolveRootDirectory(flagValues.rootDirectory)
	if rootError != nil {
		return rootError
	}
	ignoreSpec, ignoreError := buildIgnoreSpec(rootDirectory, ignoreFileName, treeConfiguration.Exclude, flagValues.exclusionPatterns)
	if ignoreError != nil {
		return ignoreError
	}

	treeBuilder := &commands.TreeBuilder{
		Options: types.WalkOptions{
			DirectoriesOnly: directoriesOnly,
			IncludeHidden:   includeHidden,
			MaxDepth:        maxDepth,
			IgnoreSpec:      ignoreSpec,
		},
		Logger: logger,
	}
	treeLines, buildError := treeBuilder.BuildTree(rootDirectory)
	if buildError != nil {
		return buildError
	}

	if flagValues.outputPath != "" {
		// #nosec G304
		outputFile, createError := os.Create(flagValues.outputPath)
		if createError != nil {
			return fmt.Errorf(errorCreateOutputFormat, flagValues.outputPath, createError)
		}
		writeError := output.WriteTreeLines(outputFile, treeLines)
		closeError := outputFile.Close()
		if writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, flagValues.outputPath, writeError)
		}
		if closeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, flagValues.outputPath, closeError)
		}
		logger.Info(fmt.Sprintf(infoTreeWrittenFormat, flagValues.outputPath))
	} else if writeError := output.WriteTreeLines(os.Stdout, treeLines); writeError != nil {
		return writeError
	}

	if copyToClipboard {
		renderedTree := strings.Join(treeLines, "\n") + "\n"
		if copyError := clipboard.NewSystemClipboard().Copy(renderedTree); copyError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardCopyFormat, copyError))
		} else {
			logger.Info(infoClipboardCopiedMessage)
		}
	}
	return nil
}

// combineFlagValues stores flag targets for the combine command.
type combineFlagValues struct {
	rootDirectory      string
	outputDirectory    string
	ignoreFileName     string
	exclusionPatterns  []string
	copyToClipboard    bool
	tokensEnabled      bool
	tokenizerModelName string
}

// createCombineCommand returns the combine subcommand.
func createCombineCommand(logger *zap.Logger, configurationFilePath *string) *cobra.Command {
	var flagValues combineFlagValues

	combineCommand := &cobra.Command{
		Use:     combineUse,
		Aliases: []string{combineAlias},
		Short:   combineShortDescription,
		Long:    combineLongDescription,
		Example: combineUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runCombine(command, flagValues, *configurationFilePath, logger)
		},
	}

	combineCommand.Flags().StringVarP(&flagValues.rootDirectory, rootFlagName, rootFlagShorthand, "", rootFlagDescription)
	combineCommand.Flags().StringVarP(&flagValues.outputDirectory, outputDirectoryFlagName, outputDirectoryFlagShorthand, defaultOutputDirectory, outputDirectoryFlagDescription)
	combineCommand.Flags().StringVar(&flagValues.ignoreFileName, ignoreFileFlagName, utils.GitIgnoreFileName, ignoreFileFlagDescription)
	combineCommand.Flags().StringArrayVarP(&flagValues.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(combineCommand.Flags(), &flagValues.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(combineCommand.Flags(), &flagValues.tokensEnabled, tokensFlagName, "", false, tokensFlagDescription)
	combineCommand.Flags().StringVar(&flagValues.tokenizerModelName, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return combineCommand
}

// runCombine produces the combined document for the resolved root.
func runCombine(command *cobra.Command, flagValues combineFlagValues, configurationFilePath string, logger *zap.Logger) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: configurationFilePath})
	if configurationError != nil {
		return configurationError
	}
	combineConfiguration := applicationConfiguration.Combine

	ignoreFileName := resolveStringSetting(command, ignoreFileFlagName, combineConfiguration.IgnoreFile, flagValues.ignoreFileName, utils.GitIgnoreFileName)
	outputDirectory := resolveStringSetting(command, outputDirectoryFlagName, combineConfiguration.OutputDirectory, flagValues.outputDirectory, defaultOutputDirectory)
	copyToClipboard := resolveBoolSetting(command, copyFlagName, combineConfiguration.Copy, flagValues.copyToClipboard, false)
	tokensEnabled := resolveBoolSetting(command, tokensFlagName, combineConfiguration.Tokens.Enabled, flagValues.tokensEnabled, false)
	tokenizerModelName := resolveStringSetting(command, modelFlagName, combineConfiguration.Tokens.Model, flagValues.tokenizerModelName, tokenizer.DefaultModel)

	rootDirectory, rootError := resolveRootDirectory(flagValues.rootDirectory)
	if rootError != nil {
		return rootError
	}
	ignoreSpec, ignoreError := buildIgnoreSpec(rootDirectory, ignoreFileName, combineConfiguration.Exclude, flagValues.exclusionPatterns)
	if ignoreError != nil {
		return ignoreError
	}

	combiner := &commands.Combiner{
		Instructions: combineConfiguration.Instructions,
		Options:      types.DefaultWalkOptions(ignoreSpec),
		Logger:       logger,
	}

	var documentBuffer bytes.Buffer
	combineStats, combineError := combiner.Combine(rootDirectory, &documentBuffer)
	if combineError != nil {
		return combineError
	}

	if tokensEnabled {
		tokenCounter, resolvedModelName, counterError := tokenizer.NewCounter(tokenizerModelName)
		if counterError != nil {
			return counterError
		}
		tokenCount, countError := tokenCounter.CountString(documentBuffer.String())
		if countError != nil {
			logger.Warn(fmt.Sprintf(warningTokenCountFormat, countError))
		} else {
			combineStats.Tokens = tokenCount
			combineStats.Model = resolvedModelName
		}
	}

	outputPath := filepath.Join(outputDirectory, combinedOutputFileName)
	// #nosec G306
	if writeError := os.WriteFile(outputPath, documentBuffer.Bytes(), 0o644); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}

	if copyToClipboard {
		if copyError := clipboard.NewSystemClipboard().Copy(documentBuffer.String()); copyError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardCopyFormat, copyError))
		} else {
			logger.Info(infoClipboardCopiedMessage)
		}
	}

	if combineStats.Skipped > 0 {
		logger.Warn(fmt.Sprintf(warningSkippedFilesFormat, combineStats.Skipped))
	}
	logger.Info(fmt.Sprintf(infoCombineSuccessFormat, outputPath, combineStats.Files, utils.FormatFileSize(combineStats.SizeBytes)))
	if combineStats.Model != "" {
		logger.Info(fmt.Sprintf(infoTokenCountFormat, combineStats.Model, combineStats.Tokens))
	}
	return nil
}

// createInitCommand returns the init subcommand.
func createInitCommand(logger *zap.Logger) *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: forceOverwrite})
			if initError != nil {
				return initError
			}
			logger.Info(fmt.Sprintf(infoConfigWrittenFormat, writtenPath))
			return nil
		},
	}

	registerBooleanFlag(initCommand.Flags(), &writeGlobal, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// resolveRootDirectory validates an explicit root or discovers the project
// root from the working directory.
func resolveRootDirectory(explicitRoot string) (string, error) {
	if explicitRoot == "" {
		return utils.DiscoverProjectRoot(".")
	}
	absoluteRoot, absoluteError := filepath.Abs(explicitRoot)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsoluteRootFormat, explicitRoot, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorRootMissingFormat, explicitRoot)
		}
		return "", fmt.Errorf(errorStatRootFormat, explicitRoot, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, explicitRoot)
	}
	return absoluteRoot, nil
}

// buildIgnoreSpec loads the ignore file and appends configured and
// command-line exclusion patterns in that order, so later patterns can negate
// earlier ones.
func buildIgnoreSpec(rootDirectory string, ignoreFileName string, configuredPatterns []string, commandLinePatterns []string) (*ignore.Spec, error) {
	filePatterns, loadError := config.LoadIgnorePatterns(rootDirectory, ignoreFileName)
	if loadError != nil {
		return nil, loadError
	}
	mergedPatterns := config.MergeExclusionPatterns(filePatterns, configuredPatterns)
	mergedPatterns = config.MergeExclusionPatterns(mergedPatterns, commandLinePatterns)
	return ignore.CompileSpec(mergedPatterns), nil
}

// resolveStringSetting applies configuration and flag precedence over a
// built-in default. An explicitly set flag always wins.
func resolveStringSetting(command *cobra.Command, flagName string, configured string, flagValue string, defaultValue string) string {
	resolved := defaultValue
	if configured != "" {
		resolved = configured
	}
	if command.Flags().Changed(flagName) {
		resolved = flagValue
	}
	return resolved
}

// resolveBoolSetting applies configuration and flag precedence over a
// built-in default for boolean settings.
func resolveBoolSetting(command *cobra.Command, flagName string, configured *bool, flagValue bool, defaultValue bool) bool {
	resolved := defaultValue
	if configured != nil {
		resolved = *configured
	}
	if command.Flags().Changed(flagName) {
		resolved = flagValue
	}
	return resolved
}

// resolveIntSetting applies configuration and flag precedence over a built-in
// default for integer settings.
func resolveIntSetting(command *cobra.Command, flagName string, configured *int, flagValue int, defaultValue int) int {
	resolved := defaultValue
	if configured != nil {
		resolved = *configured
	}
	if command.Flags().Changed(flagName) {
		resolved = flagValue
	}
	return resolved
}
