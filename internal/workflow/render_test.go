package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/workflowgen/internal/config"
	"github.com/shinji-kodama/workflowgen/internal/model"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err, "embedded templates should parse")
	return r
}

// TestRender_CI verifies the project name lands in both xcodebuild lines.
func TestRender_CI(t *testing.T) {
	out, err := newRenderer(t).Render(model.ArtifactCI, NewData("proj", "", config.Default()))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "xcodebuild -project proj.xcodeproj")
	assert.Contains(t, content, "-scheme proj-Package")
	assert.Contains(t, content, "runs-on: macOS-latest")
	assert.NotContains(t, content, "[[", "template delimiters must not leak into output")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(out, &parsed), "CI workflow should be valid YAML")
	assert.Equal(t, "CI", parsed["name"])
}

// TestRender_DocsPublish verifies the GitHub expression survives rendering
// verbatim and the workflow triggers on published releases.
func TestRender_DocsPublish(t *testing.T) {
	out, err := newRenderer(t).Render(model.ArtifactDocsPublish, NewData("MyLib", "", config.Default()))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "personal_access_token: ${{ secrets.ACCESS_TOKEN }}")
	assert.Contains(t, content, "uses: steven0351/publish-jazzy-docs@v1")
	assert.Contains(t, content, "config: .jazzy.yml")

	var parsed struct {
		Name string `yaml:"name"`
		On   struct {
			Release struct {
				Types []string `yaml:"types"`
			} `yaml:"release"`
		} `yaml:"on"`
	}
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "Publish Documentation", parsed.Name)
	assert.Equal(t, []string{"published"}, parsed.On.Release.Types)
}

// TestRender_DocsConfig is the canonical .jazzy.yml case: explicit name and
// repository URL.
func TestRender_DocsConfig(t *testing.T) {
	out, err := newRenderer(t).Render(model.ArtifactDocsConfig,
		NewData("MyLib", "https://github.com/x/y", config.Default()))
	require.NoError(t, err)

	expected := strings.Join([]string{
		"clean: true",
		"sdk: iphone",
		"author: Steven Sherry",
		"module: MyLib",
		"readme: README.md",
		"github_url: https://github.com/x/y",
		"disable_search: true",
		"theme: fullwidth",
		"build_tool_arguments: [-target, MyLib]",
		"",
	}, "\n")
	assert.Equal(t, expected, string(out))
}

func TestRenderDocsConfig_WithoutGitHubURL(t *testing.T) {
	out, err := RenderDocsConfig(NewData("MyLib", "", config.Default()))
	require.NoError(t, err)

	assert.NotContains(t, string(out), "github_url")
	assert.Contains(t, string(out), "module: MyLib")
}

// TestRenderDocsConfig_Overrides verifies the defaults are fields, not
// literals baked into the output.
func TestRenderDocsConfig_Overrides(t *testing.T) {
	docs := config.Default()
	docs.Author = "Jane Doe"
	docs.Theme = "apple"
	docs.Clean = false

	out, err := RenderDocsConfig(NewData("Kit", "", docs))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "Jane Doe", parsed["author"])
	assert.Equal(t, "apple", parsed["theme"])
	assert.Equal(t, false, parsed["clean"])
	assert.Equal(t, []any{"-target", "Kit"}, parsed["build_tool_arguments"])
}

// TestRenderDocsConfig_QuotesAmbiguousNames checks that a project name which
// YAML would read as another type stays a string.
func TestRenderDocsConfig_QuotesAmbiguousNames(t *testing.T) {
	out, err := RenderDocsConfig(NewData("true", "", config.Default()))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "true", parsed["module"])
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := newRenderer(t).Render(model.ArtifactKind("bogus"), NewData("x", "", config.Default()))
	assert.Error(t, err)
}
