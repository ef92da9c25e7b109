package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Options is the resolved set of user-supplied options for one invocation.
// It is built once by the cli package and never mutated afterwards.
type Options struct {
	// Directory is the raw --directory value. It may be absolute or relative
	// to the working directory at invocation time.
	Directory string

	// ProjectName is the explicit --project-name value. Empty means
	// "infer from the resolved paths" (see ResolvedPaths.InferredProjectName).
	ProjectName string

	// CI is true when --continuous-integration was present on the command
	// line. Only presence is considered, never the flag's value.
	CI bool

	// Docs is true when --generate-documentation was present on the command
	// line. Presence-only, like CI.
	Docs bool

	// GitHubURL is the optional --github-url value. When empty, the docs
	// configuration omits the github_url key.
	GitHubURL string

	// DryRun renders artifacts without creating directories or writing files.
	DryRun bool
}

// HasDirectory reports whether a usable --directory value was supplied.
func (o Options) HasDirectory() bool {
	return strings.TrimSpace(o.Directory) != ""
}

// ValidateProjectName rejects names that would corrupt the generated files.
// The name is substituted into a folded YAML scalar in the CI workflow, so a
// control character such as a newline would end the scalar early.
func ValidateProjectName(name string) error {
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid project name %q: must not contain control characters", name)
		}
	}
	return nil
}

// ResolvedPaths holds the absolute output locations derived from Options.
type ResolvedPaths struct {
	// Base is the absolute project root.
	Base string

	// Workflow is Base/.github/workflows.
	Workflow string
}

// WorkflowSubdir is the conventional location of pipeline definitions
// relative to the project root.
var WorkflowSubdir = filepath.Join(".github", "workflows")

// NewResolvedPaths derives ResolvedPaths from an already-absolute base.
func NewResolvedPaths(base string) ResolvedPaths {
	return ResolvedPaths{
		Base:     base,
		Workflow: filepath.Join(base, WorkflowSubdir),
	}
}

// InferredProjectName returns the last path component of the workflow
// directory. This is always "workflows"; callers fall back to it only when
// no explicit project name was given.
func (p ResolvedPaths) InferredProjectName() string {
	return filepath.Base(p.Workflow)
}

// ArtifactKind identifies one of the generated configuration files.
type ArtifactKind string

const (
	// ArtifactCI is the continuous-integration workflow (main.yml).
	ArtifactCI ArtifactKind = "ci"

	// ArtifactDocsConfig is the documentation generator configuration
	// (.jazzy.yml), written to the project root.
	ArtifactDocsConfig ArtifactKind = "docs-config"

	// ArtifactDocsPublish is the documentation publishing workflow
	// (docsGen.yml).
	ArtifactDocsPublish ArtifactKind = "docs-publish"
)

// String returns the string representation of ArtifactKind.
func (k ArtifactKind) String() string {
	return string(k)
}

// FileName returns the fixed output file name for the kind.
func (k ArtifactKind) FileName() string {
	switch k {
	case ArtifactCI:
		return "main.yml"
	case ArtifactDocsConfig:
		return ".jazzy.yml"
	case ArtifactDocsPublish:
		return "docsGen.yml"
	default:
		return ""
	}
}

// Path returns where an artifact of this kind is written. The docs config
// lives in the project root; the two workflows live in the workflow directory.
func (k ArtifactKind) Path(paths ResolvedPaths) string {
	if k == ArtifactDocsConfig {
		return filepath.Join(paths.Base, k.FileName())
	}
	return filepath.Join(paths.Workflow, k.FileName())
}

// Artifact is a single rendered file ready to be written.
type Artifact struct {
	Kind    ArtifactKind
	Path    string
	Content []byte
}

// String returns "kind → path" for verbose output.
func (a Artifact) String() string {
	return fmt.Sprintf("%s → %s", a.Kind, a.Path)
}

// ExitCode defines the CLI exit codes. Scripts can rely on these to tell
// a usage mistake apart from a filesystem failure.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers unspecified failures and the missing
	// --directory contract.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates malformed or unknown flags or arguments.
	ExitUsageError ExitCode = 2

	// ExitFilesystemError indicates directory creation or a file write failed.
	ExitFilesystemError ExitCode = 3

	// ExitConfigError indicates the --config file could not be loaded.
	ExitConfigError ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error

	// Quiet marks errors whose message has already been shown to the user.
	// Execute exits with Code without printing anything further.
	Quiet bool
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// NewQuietCLIError creates a CLIError whose message was already printed.
func NewQuietCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message, Quiet: true}
}
