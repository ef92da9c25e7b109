// Package cli implements the cobra-based command line for workflowgen.
//
// The tool has a single root command that parses options, resolves the
// target project and writes the enabled artifacts. This file defines the
// command, its global flags and the exit code handling; generate.go holds
// the generation flow and its output.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/workflowgen/internal/config"
	"github.com/shinji-kodama/workflowgen/internal/model"
)

// Global flag variables. These are bound to cobra persistent flags on the
// root command and reset to their defaults every time NewRootCommand runs.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables trace output on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Flag names. The presence-only flags are looked up by name with
// Flags().Changed, so they are kept as constants.
const (
	flagDirectory   = "directory"
	flagProjectName = "project-name"
	flagCI          = "continuous-integration"
	flagDocs        = "generate-documentation"
	flagGitHubURL   = "github-url"
	flagDryRun      = "dry-run"
	flagConfig      = "config"
)

// generateFlags holds the value flags for the root command.
type generateFlags struct {
	directory   string
	projectName string
	githubURL   string
	configPath  string
	dryRun      bool

	// ci and docs receive the parsed values so pflag accepts the usual bool
	// syntax, but only their presence is ever consulted.
	ci   bool
	docs bool
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	flags := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "workflowgen",
		Short: "Generate GitHub Workflow boilerplate",
		Long: `workflowgen writes GitHub Actions workflows and documentation generator
configuration into an existing project.

Generated files (relative to --directory):
  .github/workflows/main.yml      with --continuous-integration
  .jazzy.yml                      with --generate-documentation
  .github/workflows/docsGen.yml   with --generate-documentation

Existing files with the same names are replaced.

Examples:
  workflowgen --directory ./MyLib -c
  workflowgen -d /src/MyLib --generate-documentation -p MyLib -g https://github.com/me/MyLib`,

		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},

		// SilenceUsage prevents cobra from printing usage on every error.
		// Usage errors carry the usage text themselves.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them (text or JSON based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	f := rootCmd.Flags()
	f.StringVarP(&flags.directory, flagDirectory, "d", "", "Project root to generate into (required)")
	f.StringVarP(&flags.projectName, flagProjectName, "p", "", "Project name used in generated files")
	f.BoolVarP(&flags.ci, flagCI, "c", false, "Generate the CI workflow (presence enables it)")
	// -d belongs to --directory; this flag has no short form.
	f.BoolVar(&flags.docs, flagDocs, false, "Generate docs config and publishing workflow (presence enables it)")
	f.StringVarP(&flags.githubURL, flagGitHubURL, "g", "", "Repository URL added to the docs config")
	f.BoolVar(&flags.dryRun, flagDryRun, false, "Render artifacts without writing anything")
	f.StringVar(&flags.configPath, flagConfig, "", "Config file with docs defaults (.yaml, .yml, .json, .jsonc)")

	// Overrides for the docs config defaults. Empty defaults so that unset
	// flags never shadow the config file.
	f.String(config.KeyAuthor, "", "Author written to the docs config")
	f.String(config.KeyTheme, "", "Theme written to the docs config")
	f.String(config.KeySDK, "", "SDK written to the docs config")

	rootCmd.SetFlagErrorFunc(usageError)

	return rootCmd
}

// usageError wraps a parse failure together with the command's usage text.
func usageError(cmd *cobra.Command, err error) error {
	return model.WrapCLIError(model.ExitUsageError, "invalid usage",
		fmt.Errorf("%w\n\n%s", err, cmd.UsageString()))
}

// Execute runs the root command and exits the process with the mapped code
// when it fails. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(handleError(os.Stderr, err)))
	}
}

// handleError reports err on w and returns the exit code for it.
// CLIErrors carry their own code; anything else is a general error.
func handleError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if !cliErr.Quiet {
			printError(w, cliErr.Message, cliErr.Err)
		}
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "%s %s: %v\n", errorPrefix(), message, underlying)
	} else {
		fmt.Fprintf(w, "%s %s\n", errorPrefix(), message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
