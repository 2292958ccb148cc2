package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Text(t *testing.T) {
	stdout, _, err := execute(t, "validate", clinic)
	require.NoError(t, err)
	assert.Contains(t, stdout, "template valid: 3 columns")
	assert.Contains(t, stdout, "  clinic_id\n  site\n  label")
	assert.Contains(t, stdout, "hidden: code")
}

func TestValidate_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--log-format", "json", "validate", clinic)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []string{"clinic_id", "site", "label"}, resp.Data.Columns)
	assert.Equal(t, []string{"code"}, resp.Data.Hidden)
}

func TestValidate_Invalid(t *testing.T) {
	stdout, _, err := execute(t, "--log-format", "json", "validate", "testdata/templates/broken.yml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBuild, resp.Error.Code)
}

func TestClasses(t *testing.T) {
	stdout, _, err := execute(t, "classes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines, "headfake.Fieldset")
	assert.Contains(t, lines, "headfake.field.NhsNoField")
	assert.Contains(t, lines, "headfake.transformer.FormatNumber")
}
