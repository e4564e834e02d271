// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/temirov/codic/internal/collector"
	"github.com/temirov/codic/internal/config"
	"github.com/temirov/codic/internal/dispatch"
	"github.com/temirov/codic/internal/services/clipboard"
	"github.com/temirov/codic/internal/tokenizer"
	"github.com/temirov/codic/internal/utils"
)

const (
	recursiveFlagName    = "recursive"
	recursiveShorthand   = "r"
	fileTypeFlagName     = "filetype"
	excludeDirFlagName   = "exclude-dir"
	excludeFileFlagName  = "exclude-file"
	regexFilterFlagName  = "regex-filter"
	copyFlagName         = "copy"
	copyFlagShorthand    = "c"
	printFlagName        = "print"
	printFlagShorthand   = "p"
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	quietFlagName        = "quiet"
	quietFlagShorthand   = "q"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	configFlagName       = "config"
	versionFlagName      = "version"
	versionTemplate      = "codic version {{.Version}}\n"
	rootUse              = "codic <directory>"
	rootShortDescription = "copy a directory's files into one annotated text"
	rootLongDescription  = `codic concatenates the files under a directory into a single text, each
preceded by a "// <relative path>" header, and delivers it to one place.
By default the text is copied to the clipboard when standard output is an
interactive terminal and printed to standard output otherwise.
Status messages are written to standard error.`
	rootUsageExample = `  # Copy every Go and Markdown file under the project
  codic -r --filetype .go .md .

  # Print test files only, skipping vendored code
  codic -r --regex-filter '_test\.go$' --exclude-dir vendor -p . | less

  # Save the snapshot to a file
  codic -r -o context.txt ./src`

	recursiveFlagDescription   = "process files in all subdirectories"
	fileTypeFlagDescription    = "include only files ending with these extensions"
	excludeDirFlagDescription  = "exclude directories by name"
	excludeFileFlagDescription = "exclude files by name"
	regexFlagDescription       = "include only files whose name matches the regular expression"
	copyFlagDescription        = "force copying to the clipboard"
	printFlagDescription       = "force printing to standard output"
	outputFlagDescription      = "write the result to a file"
	quietFlagDescription       = "do not print status messages to standard error"
	tokensFlagDescription      = "report an estimated token count"
	modelFlagDescription       = "tokenizer model used for --tokens"
	configFlagDescription      = "configuration file with flag defaults"
	versionFlagDescription     = "print the version and exit"

	notDirectoryMessageFormat  = "'%s' %w"
	collectionFailedFormat     = "unexpected error: %w"
	tokenizerUnavailableFormat = "Warning: token counting disabled: %v"
)

// ErrNotDirectory reports a directory argument that is missing or not a directory.
var ErrNotDirectory = errors.New("is not a valid directory")

// Dependencies are the process-level collaborators the command writes through.
type Dependencies struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Clipboard  clipboard.Copier
	IsTerminal func() bool
}

// DefaultDependencies wires the real standard streams and system clipboard.
func DefaultDependencies() Dependencies {
	return Dependencies{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.NewService(),
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Execute runs codic with the process arguments.
func Execute() error {
	return ExecuteWith(os.Args[1:], DefaultDependencies())
}

// ExecuteWith runs codic with explicit arguments and dependencies.
func ExecuteWith(arguments []string, dependencies Dependencies) error {
	normalizedArguments, argumentsError := normalizeMultiValueArguments(arguments)
	if argumentsError != nil {
		return argumentsError
	}
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(normalizedArguments)
	return rootCommand.Execute()
}

// commandOptions stores the values bound to the root command's flags.
type commandOptions struct {
	recursive           bool
	extensions          []string
	excludedDirectories []string
	excludedFiles       []string
	namePattern         string
	copyToClipboard     bool
	printToStdout       bool
	outputPath          string
	quiet               bool
	tokensEnabled       bool
	tokenModel          string
	configPath          string
}

// NewRootCommand builds the codic Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Version:       utils.GetApplicationVersion(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runCodic(command, arguments[0], options, dependencies)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	if dependencies.Stdout != nil {
		rootCommand.SetOut(dependencies.Stdout)
	}
	if dependencies.Stderr != nil {
		rootCommand.SetErr(dependencies.Stderr)
	}

	flagSet := rootCommand.Flags()
	flagSet.SortFlags = false
	registerBooleanFlag(flagSet, &options.recursive, recursiveFlagName, recursiveShorthand, false, recursiveFlagDescription)
	flagSet.StringArrayVar(&options.extensions, fileTypeFlagName, nil, fileTypeFlagDescription)
	flagSet.StringArrayVar(&options.excludedDirectories, excludeDirFlagName, nil, excludeDirFlagDescription)
	flagSet.StringArrayVar(&options.excludedFiles, excludeFileFlagName, nil, excludeFileFlagDescription)
	flagSet.StringVar(&options.namePattern, regexFilterFlagName, "", regexFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, copyFlagShorthand, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.printToStdout, printFlagName, printFlagShorthand, false, printFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	registerBooleanFlag(flagSet, &options.quiet, quietFlagName, quietFlagShorthand, false, quietFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	// Registered here so cobra does not add its -v shorthand.
	flagSet.Bool(versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runCodic validates the configuration, collects the directory and dispatches
// the result. Every configuration error is returned before traversal starts.
func runCodic(command *cobra.Command, directory string, options commandOptions, dependencies Dependencies) error {
	selection, selectionError := dispatch.NewSelection(options.outputPath, options.copyToClipboard, options.printToStdout)
	if selectionError != nil {
		return selectionError
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	options = applyConfiguration(command, options, applicationConfiguration)

	if directoryError := validateDirectory(directory); directoryError != nil {
		return directoryError
	}

	filter, filterError := collector.NewFilterConfig(collector.FilterOptions{
		Recursive:           options.recursive,
		Extensions:          options.extensions,
		ExcludedDirectories: options.excludedDirectories,
		ExcludedFiles:       options.excludedFiles,
		NamePattern:         options.namePattern,
	})
	if filterError != nil {
		return filterError
	}

	statusLogger := utils.NewStatusLogger(dependencies.Stderr, options.quiet)
	defer func() { _ = statusLogger.Sync() }()

	environment := dispatch.Environment{
		Stdout:     dependencies.Stdout,
		Clipboard:  dependencies.Clipboard,
		IsTerminal: dependencies.IsTerminal,
		Logger:     statusLogger,
	}
	if options.tokensEnabled {
		counter, model, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			statusLogger.Warn(fmt.Sprintf(tokenizerUnavailableFormat, counterError))
		} else {
			environment.TokenCounter = counter
			environment.TokenModel = model
		}
	}

	output, collectError := collector.New(statusLogger).Collect(directory, filter)
	if collectError != nil {
		return fmt.Errorf(collectionFailedFormat, collectError)
	}
	return dispatch.New(environment).Dispatch(output.String(), selection)
}

// applyConfiguration fills options the user did not set explicitly from the
// loaded configuration.
func applyConfiguration(command *cobra.Command, options commandOptions, applicationConfiguration config.ApplicationConfiguration) commandOptions {
	flagSet := command.Flags()
	if !flagSet.Changed(recursiveFlagName) {
		options.recursive = config.BoolValue(applicationConfiguration.Recursive, options.recursive)
	}
	if !flagSet.Changed(fileTypeFlagName) && len(applicationConfiguration.Extensions) > 0 {
		options.extensions = applicationConfiguration.Extensions
	}
	if !flagSet.Changed(excludeDirFlagName) && len(applicationConfiguration.ExcludedDirectories) > 0 {
		options.excludedDirectories = applicationConfiguration.ExcludedDirectories
	}
	if !flagSet.Changed(excludeFileFlagName) && len(applicationConfiguration.ExcludedFiles) > 0 {
		options.excludedFiles = applicationConfiguration.ExcludedFiles
	}
	if !flagSet.Changed(regexFilterFlagName) && applicationConfiguration.NamePattern != "" {
		options.namePattern = applicationConfiguration.NamePattern
	}
	if !flagSet.Changed(quietFlagName) {
		options.quiet = config.BoolValue(applicationConfiguration.Quiet, options.quiet)
	}
	if !flagSet.Changed(tokensFlagName) {
		options.tokensEnabled = config.BoolValue(applicationConfiguration.Tokens.Enabled, options.tokensEnabled)
	}
	if !flagSet.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenModel = applicationConfiguration.Tokens.Model
	}
	return options
}

func validateDirectory(directory string) error {
	info, statError := os.Stat(directory)
	if statError != nil || !info.IsDir() {
		return fmt.Errorf(notDirectoryMessageFormat, directory, ErrNotDirectory)
	}
	return nil
}
