package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/workflowgen/internal/config"
	"github.com/shinji-kodama/workflowgen/internal/model"
	"github.com/shinji-kodama/workflowgen/internal/scaffold"
)

// noDirectoryMessage is printed on stdout when --directory is missing.
// Scripts match on it, so it must not change.
const noDirectoryMessage = "No directory provided. Exiting..."

var (
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func errorPrefix() string {
	return errorColor.Sprint("Error:")
}

// runGenerate is the orchestration for the root command:
//  1. Build Options (presence-only for the two enabling flags)
//  2. Stop with exit code 1 if --directory is missing, reject bad names
//  3. Load docs defaults (built-ins < --config < flags)
//  4. Resolve paths, create the workflow directory, write artifacts
//  5. Print the result
func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	opts := optionsFromFlags(cmd, flags)

	if !opts.HasDirectory() {
		fmt.Fprintln(cmd.OutOrStdout(), noDirectoryMessage)
		return model.NewQuietCLIError(model.ExitGeneralError, noDirectoryMessage)
	}

	if err := model.ValidateProjectName(opts.ProjectName); err != nil {
		return model.NewCLIError(model.ExitUsageError, err.Error())
	}

	docs, err := config.Load(flags.configPath, cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "failed to load configuration", err)
	}
	VerboseLog("Docs defaults: author=%q theme=%q sdk=%q", docs.Author, docs.Theme, docs.SDK)

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	gen, err := scaffold.New(docs)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load templates", err)
	}
	gen.Logf = VerboseLog

	result, err := gen.Generate(opts, cwd)
	if err != nil {
		var fsErr *scaffold.FSError
		if errors.As(err, &fsErr) {
			return model.WrapCLIError(model.ExitFilesystemError, "failed to generate files", err)
		}
		return model.WrapCLIError(model.ExitGeneralError, "failed to render files", err)
	}

	printGenerateResult(cmd.OutOrStdout(), result, cwd)
	return nil
}

// optionsFromFlags builds Options from the parsed command line.
//
// CI and Docs come from Flags().Changed, not from the parsed bool values:
// any occurrence of the flag enables the artifact, including an explicit
// "--continuous-integration=false".
func optionsFromFlags(cmd *cobra.Command, flags *generateFlags) model.Options {
	return model.Options{
		Directory:   flags.directory,
		ProjectName: flags.projectName,
		CI:          cmd.Flags().Changed(flagCI),
		Docs:        cmd.Flags().Changed(flagDocs),
		GitHubURL:   flags.githubURL,
		DryRun:      flags.dryRun,
	}
}

// printGenerateResult outputs the result in text or JSON format.
func printGenerateResult(w io.Writer, result *scaffold.Result, cwd string) {
	if IsJSONOutput() {
		printGenerateResultJSON(w, result)
	} else {
		printGenerateResultText(w, result, cwd)
	}
}

func printGenerateResultJSON(w io.Writer, result *scaffold.Result) {
	type artifactJSON struct {
		Kind  string `json:"kind"`
		Path  string `json:"path"`
		Bytes int    `json:"bytes"`
	}

	type resultJSON struct {
		Base        string         `json:"base"`
		Workflow    string         `json:"workflow"`
		ProjectName string         `json:"projectName"`
		DryRun      bool           `json:"dryRun"`
		Artifacts   []artifactJSON `json:"artifacts"`
	}

	out := resultJSON{
		Base:        result.Paths.Base,
		Workflow:    result.Paths.Workflow,
		ProjectName: result.ProjectName,
		DryRun:      result.DryRun,
		Artifacts:   make([]artifactJSON, 0, len(result.Artifacts)),
	}
	for _, a := range result.Artifacts {
		out.Artifacts = append(out.Artifacts, artifactJSON{
			Kind:  a.Kind.String(),
			Path:  a.Path,
			Bytes: len(a.Content),
		})
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(w, string(data))
}

func printGenerateResultText(w io.Writer, result *scaffold.Result, cwd string) {
	if len(result.Artifacts) == 0 {
		if result.DryRun {
			infoColor.Fprintln(w, "Nothing to generate")
		} else {
			infoColor.Fprintf(w, "Nothing to generate; created %s\n", displayPath(result.Paths.Workflow, cwd))
		}
		return
	}

	verb := "Wrote"
	if result.DryRun {
		verb = "Would write"
	}
	for _, a := range result.Artifacts {
		successColor.Fprintf(w, "%s %s\n", verb, displayPath(a.Path, cwd))
	}
}

// displayPath shortens path to be relative to cwd when it lives below it.
func displayPath(path, cwd string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
