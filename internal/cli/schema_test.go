package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqncheck/internal/schema"
)

func TestSchemaCommandText(t *testing.T) {
	stdout, _, err := executeCommand(t, "schema")
	require.NoError(t, err)
	assert.Equal(t, schema.Source, stdout)
	assert.Contains(t, stdout, "#EquationData")
}

func TestSchemaCommandJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "schema")
	require.NoError(t, err)

	var resp struct {
		Status  string       `json:"status"`
		Data    SchemaResult `json:"data"`
		TraceID string       `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "dataset.cue", resp.Data.Name)
	assert.Equal(t, schema.Source, resp.Data.Source)
	assert.Equal(t, "test-run", resp.TraceID)
}

func TestSchemaCommandRejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "schema", "extra")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
