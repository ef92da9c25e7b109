package workflow

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/workflowgen/internal/config"
	"github.com/shinji-kodama/workflowgen/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// templateFiles maps the templated artifact kinds to their embedded source.
var templateFiles = map[model.ArtifactKind]string{
	model.ArtifactCI:          "templates/ci.yml.tmpl",
	model.ArtifactDocsPublish: "templates/docs-publish.yml.tmpl",
}

// Data is the set of values available to every artifact.
type Data struct {
	// ProjectName is the effective project name (explicit or inferred).
	ProjectName string

	// GitHubURL is added to the docs config as github_url when non-empty.
	GitHubURL string

	// DocsConfigFile is the docs config file name referenced by the
	// publishing workflow.
	DocsConfigFile string

	// Docs carries the overridable docs config defaults.
	Docs config.DocsDefaults
}

// NewData builds Data for projectName with the standard docs config file name.
func NewData(projectName, githubURL string, docs config.DocsDefaults) Data {
	return Data{
		ProjectName:    projectName,
		GitHubURL:      githubURL,
		DocsConfigFile: model.ArtifactDocsConfig.FileName(),
		Docs:           docs,
	}
}

// Renderer produces artifact contents. Templates are parsed once in
// NewRenderer; a Renderer is not meant to be shared across goroutines.
type Renderer struct {
	templates map[model.ArtifactKind]*template.Template
}

// NewRenderer parses the embedded workflow templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[model.ArtifactKind]*template.Template, len(templateFiles))}

	for kind, path := range templateFiles {
		src, err := templateFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
		tmpl, err := template.New(path).
			Delims("[[", "]]").
			Option("missingkey=error").
			Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		r.templates[kind] = tmpl
	}

	return r, nil
}

// Render returns the content for kind.
func (r *Renderer) Render(kind model.ArtifactKind, data Data) ([]byte, error) {
	if kind == model.ArtifactDocsConfig {
		return RenderDocsConfig(data)
	}

	tmpl, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("no template for artifact kind %q", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// RenderDocsConfig builds the .jazzy.yml document. Keys are emitted in a
// fixed order and build_tool_arguments uses flow style so the output reads
// "build_tool_arguments: [-target, Name]".
func RenderDocsConfig(data Data) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content, str(key), value)
	}

	add("clean", boolean(data.Docs.Clean))
	add("sdk", str(data.Docs.SDK))
	add("author", str(data.Docs.Author))
	add("module", str(data.ProjectName))
	add("readme", str(data.Docs.Readme))
	if data.GitHubURL != "" {
		add("github_url", str(data.GitHubURL))
	}
	add("disable_search", boolean(data.Docs.DisableSearch))
	add("theme", str(data.Docs.Theme))
	add("build_tool_arguments", &yaml.Node{
		Kind:    yaml.SequenceNode,
		Style:   yaml.FlowStyle,
		Content: []*yaml.Node{str("-target"), str(data.ProjectName)},
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode docs config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode docs config: %w", err)
	}
	return buf.Bytes(), nil
}

// str builds a string scalar. The explicit !!str tag makes the encoder
// quote values such as "true" or "1.0" that would otherwise change type.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
