package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqncheck/internal/dataset"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "fail-fast", cfg.Mode)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Policy)
	require.NoError(t, cfg.Validate())
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		DataDir: "assets/data",
		Mode:    "collect-all",
		Format:  "json",
		Policy:  "policy/release.cue",
	}, cfg)
	assert.Equal(t, dataset.CollectAll, cfg.ValidationMode())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("mode: collect-all\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, dataset.CollectAll, cfg.ValidationMode())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "datadir")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"mode", "mode: lenient\n", "invalid mode"},
		{"format", "format: xml\n", "invalid format"},
		{"empty data dir", "data_dir: \"\"\n", "data_dir must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFile)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateEmptyModeMeansFailFast(t *testing.T) {
	cfg := Default()
	cfg.Mode = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, dataset.FailFast, cfg.ValidationMode())
}

func TestValidateReportsFirstFailure(t *testing.T) {
	cfg := Config{Mode: "lenient", Format: "xml"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "data_dir must not be empty", err.Error())
}
