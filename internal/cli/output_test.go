package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/spec"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "inner", errors.New("cause")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Equal(t, "outer: inner: cause", wrapped.Error())
}

func TestReportCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&spec.LoadError{Code: spec.ErrCodeParseFailed}, "E006"},
		{&builder.ClassNotFoundError{Class: "x"}, ErrCodeBuild},
		{&builder.BuildError{Class: "x", Err: errors.New("bad")}, ErrCodeBuild},
		{&field.CapacityExceededError{Field: "id"}, ErrCodeGenerate},
		{errors.New("other"), ErrCodeGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reportCode(tt.err), "%T", tt.err)
	}
}

func TestOutputFormatter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"rows": 3}, "ignored"))
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	buf.Reset()
	require.NoError(t, f.Error("E003", "generation failed", nil))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E003", resp.Error.Code)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, f.Success(nil, "all good"))
	assert.Equal(t, "all good\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Error("E001", "boom", "more"))
	assert.Equal(t, "Error [E001]: boom\nDetails: more\n", buf.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	err := f.Fail(ExitFailure, "generation failed", &field.CapacityExceededError{Field: "id"})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E003]: generation failed")
}
