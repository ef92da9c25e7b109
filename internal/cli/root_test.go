package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/workflowgen/internal/model"
)

// TestHandleError verifies exit code mapping and what gets printed.
func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   model.ExitCode
		wantOutput string
	}{
		{
			name:       "plain error is a general error",
			err:        errors.New("boom"),
			wantCode:   model.ExitGeneralError,
			wantOutput: "boom",
		},
		{
			name:       "CLIError keeps its code",
			err:        model.WrapCLIError(model.ExitFilesystemError, "failed to generate files", errors.New("disk full")),
			wantCode:   model.ExitFilesystemError,
			wantOutput: "failed to generate files: disk full",
		},
		{
			name:     "quiet CLIError prints nothing",
			err:      model.NewQuietCLIError(model.ExitGeneralError, "No directory provided. Exiting..."),
			wantCode: model.ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOutput = false
			var buf bytes.Buffer

			code := handleError(&buf, tt.err)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantOutput == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantOutput)
			}
		})
	}
}

func TestHandleError_JSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	code := handleError(&buf, model.WrapCLIError(model.ExitConfigError, "failed to load configuration", errors.New("bad yaml")))
	assert.Equal(t, model.ExitConfigError, code)

	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "failed to load configuration", out["error"]["message"])
	assert.Equal(t, "bad yaml", out["error"]["detail"])
}

func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{
		flagDirectory, flagProjectName, flagCI, flagDocs, flagGitHubURL,
		flagDryRun, flagConfig, "author", "theme", "sdk",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s should be registered", name)
	}

	shorthands := map[string]string{
		flagDirectory:   "d",
		flagProjectName: "p",
		flagCI:          "c",
		flagGitHubURL:   "g",
	}
	for name, short := range shorthands {
		assert.Equal(t, short, cmd.Flags().Lookup(name).Shorthand, "--%s", name)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup("json"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}
