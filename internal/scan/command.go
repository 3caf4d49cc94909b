package scan

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/execshell"
	"github.com/temirov/untracked/internal/repos/backends"
	"github.com/temirov/untracked/internal/repos/dependencies"
	"github.com/temirov/untracked/internal/repos/discovery"
	"github.com/temirov/untracked/internal/repos/shared"
	"github.com/temirov/untracked/internal/ui"
	"github.com/temirov/untracked/internal/utils"
	"github.com/temirov/untracked/internal/utils/flags"
	pathutils "github.com/temirov/untracked/internal/utils/path"
)

const (
	commandUseConstant                     = "untracked [path...]"
	commandShortDescriptionConstant        = "Report untracked and modified paths beneath directory trees"
	commandLongDescriptionConstant         = "untracked walks each path depth-first and stops at repository roots. It prints \"u <path>\" for content that no repository accounts for and \"m <path>\" for repositories with uncommitted changes, then exits non-zero if anything was printed. Without arguments it scans the configured roots or the current directory."
	colorFlagNameConstant                  = "color"
	colorFlagDescriptionConstant           = "Colour report markers."
	scanConfigurationErrorTemplateConstant = "invalid scan configuration: %w"
	executorCreationErrorTemplateConstant  = "unable to construct git executor: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	WorkingDirectory             string
	FileSystem                   shared.FileSystem
	GitExecutor                  shared.GitExecutor
	Backends                     []shared.RepositoryBackend
	TerminalDetector             ui.TerminalDetector
}

// Build constructs the cobra command that scans the provided paths.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE:          builder.run,
	}

	command.Flags().String(colorFlagNameConstant, string(ui.ColorModeAuto), flags.FormatChoiceUsage(string(ui.ColorModeAuto), ui.ColorModeChoices(), colorFlagDescriptionConstant))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(colorFlagNameConstant) {
		configuration.Color, _ = command.Flags().GetString(colorFlagNameConstant)
	}

	colorMode, colorError := ui.ParseColorMode(configuration.Color)
	if colorError != nil {
		return fmt.Errorf(scanConfigurationErrorTemplateConstant, colorError)
	}

	backendKinds, kindsError := backends.ParseKinds(configuration.Backends)
	if kindsError != nil {
		return fmt.Errorf(scanConfigurationErrorTemplateConstant, kindsError)
	}

	logger := builder.resolveLogger()
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventObserver(logger))
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}
	repositoryBackends := dependencies.ResolveBackends(builder.Backends, backendKinds, fileSystem, gitExecutor, logger)

	findings := NewFindingTally(builder.buildFindingReporter(command.OutOrStdout(), colorMode))
	diagnostics := shared.NewWriterReporter(utils.NewFlushingWriter(command.ErrOrStderr()))

	classifier := discovery.NewTreeClassifier(fileSystem, repositoryBackends, findings, diagnostics, logger)
	service := NewService(fileSystem, classifier, findings, diagnostics, pathutils.NewRootArgumentSanitizer(nil), logger)

	options := CommandOptions{
		Roots:            builder.resolveRoots(arguments, configuration),
		WorkingDirectory: builder.WorkingDirectory,
	}

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) buildFindingReporter(outputWriter io.Writer, colorMode ui.ColorMode) shared.FindingReporter {
	markerStyler := ui.NewMarkerStyler(outputWriter, colorMode, builder.TerminalDetector)
	return shared.NewWriterFindingReporter(utils.NewFlushingWriter(outputWriter), markerStyler.Render)
}

func (builder *CommandBuilder) resolveRoots(arguments []string, configuration CommandConfiguration) []string {
	if len(arguments) > 0 {
		return append([]string{}, arguments...)
	}
	return append([]string{}, configuration.Roots...)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(logger)
}
