package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqncheck/internal/dataset"
)

func TestWriteDataDir(t *testing.T) {
	dir := WriteDataDir(t, ValidVersion, "")

	data, err := os.ReadFile(filepath.Join(dir, dataset.VersionFile))
	require.NoError(t, err)
	assert.Equal(t, ValidVersion, string(data))

	_, err = os.Stat(filepath.Join(dir, dataset.EquationDataFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRequireValidDataset(t *testing.T) {
	dir := WriteDataDir(t, ValidVersion, ValidEquations)

	report := RequireValidDataset(t, dir)
	assert.True(t, report.Valid)
	assert.Equal(t, 1, report.Equations)
	assert.Equal(t, 2, report.Variables)
}

func TestShippedDataIsValid(t *testing.T) {
	report := RequireValidDataset(t, filepath.Join("..", "..", dataset.DefaultDataDir))
	assert.Positive(t, report.Equations)
}
