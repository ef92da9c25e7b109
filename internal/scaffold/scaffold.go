package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/shinji-kodama/workflowgen/internal/config"
	"github.com/shinji-kodama/workflowgen/internal/model"
	"github.com/shinji-kodama/workflowgen/internal/workflow"
)

// File and directory permissions for generated output.
const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// Result describes what a Generate call produced.
type Result struct {
	Paths       model.ResolvedPaths
	ProjectName string
	Artifacts   []model.Artifact
	DryRun      bool
}

// Generator renders and writes the enabled artifacts for one invocation.
type Generator struct {
	renderer *workflow.Renderer
	docs     config.DocsDefaults

	// Logf receives trace lines. Nil disables tracing.
	Logf func(format string, args ...any)
}

// New creates a Generator using docs as the docs config defaults.
func New(docs config.DocsDefaults) (*Generator, error) {
	r, err := workflow.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{renderer: r, docs: docs}, nil
}

func (g *Generator) logf(format string, args ...any) {
	if g.Logf != nil {
		g.Logf(format, args...)
	}
}

// ResolvePaths computes the project root and workflow directory. An absolute
// directory is used verbatim; anything else is joined onto cwd.
func ResolvePaths(directory, cwd string) model.ResolvedPaths {
	base := directory
	if !filepath.IsAbs(base) {
		base = filepath.Join(cwd, base)
	}
	return model.NewResolvedPaths(base)
}

// ProjectName returns the explicit name when set, otherwise the name
// inferred from paths.
func ProjectName(opts model.Options, paths model.ResolvedPaths) string {
	if opts.ProjectName != "" {
		return opts.ProjectName
	}
	return paths.InferredProjectName()
}

// EnabledKinds lists the artifact kinds opts turns on, in write order.
func EnabledKinds(opts model.Options) []model.ArtifactKind {
	var kinds []model.ArtifactKind
	if opts.CI {
		kinds = append(kinds, model.ArtifactCI)
	}
	if opts.Docs {
		kinds = append(kinds, model.ArtifactDocsConfig, model.ArtifactDocsPublish)
	}
	return kinds
}

// Plan renders every enabled artifact without touching the filesystem.
func (g *Generator) Plan(opts model.Options, paths model.ResolvedPaths) ([]model.Artifact, error) {
	data := workflow.NewData(ProjectName(opts, paths), opts.GitHubURL, g.docs)

	kinds := EnabledKinds(opts)
	artifacts := make([]model.Artifact, 0, len(kinds))
	for _, kind := range kinds {
		content, err := g.renderer.Render(kind, data)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, model.Artifact{
			Kind:    kind,
			Path:    kind.Path(paths),
			Content: content,
		})
	}
	return artifacts, nil
}

// Generate resolves paths against cwd, creates the workflow directory and
// writes each enabled artifact. It stops at the first failure; files written
// before the failure are left in place.
//
// In dry-run mode the artifacts are rendered and returned but nothing is
// created or written.
func (g *Generator) Generate(opts model.Options, cwd string) (*Result, error) {
	paths := ResolvePaths(opts.Directory, cwd)
	g.logf("Project directory: %s", paths.Base)
	g.logf("Workflow directory: %s", paths.Workflow)

	result := &Result{
		Paths:       paths,
		ProjectName: ProjectName(opts, paths),
		DryRun:      opts.DryRun,
	}
	g.logf("Project name: %s", result.ProjectName)

	artifacts, err := g.Plan(opts, paths)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	if opts.DryRun {
		g.logf("Dry run: skipping %d file(s)", len(artifacts))
		return result, nil
	}

	if err := os.MkdirAll(paths.Workflow, dirMode); err != nil {
		return nil, &FSError{Op: "create directory", Path: paths.Workflow, Err: err}
	}

	for _, a := range artifacts {
		if err := WriteArtifact(a); err != nil {
			return nil, err
		}
		g.logf("Wrote %s", a)
	}

	return result, nil
}

// WriteArtifact atomically replaces a.Path with a.Content. The content is
// written to a temporary file in the same directory and renamed over the
// target, so readers see either the old file or the complete new one.
func WriteArtifact(a model.Artifact) error {
	if err := atomicwriter.WriteFile(a.Path, a.Content, fileMode); err != nil {
		return &FSError{Op: "write", Path: a.Path, Err: err}
	}
	return nil
}

// FSError reports a failed filesystem operation on a generated path.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error {
	return e.Err
}
