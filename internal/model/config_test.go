package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntOr(t *testing.T) {
	assert.Equal(t, 42, IntOr("42", 7))
	assert.Equal(t, 7, IntOr("", 7))
	assert.Equal(t, 7, IntOr("abc", 7))
	assert.Equal(t, 7, IntOr("-3", 7))
	assert.Equal(t, 7, IntOr("0", 7))
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	assert.Equal(t, "\t", cfg.Delimiter)
	assert.Equal(t, `\`, cfg.PathSep)
	assert.Equal(t, 30000, cfg.FileLimit)
	assert.Equal(t, 250, cfg.MaxPathLength)
	assert.Equal(t, 250, cfg.MaxParentFileLength)
	assert.Equal(t, 190, cfg.MaxFileLength)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := Config{Delimiter: ",", PathSep: "/", FileLimit: 5}
	cfg.Normalize()
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "/", cfg.PathSep)
	assert.Equal(t, 5, cfg.FileLimit)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathbatch.yaml")
	data := "file_limit: 5000\npath_separator: \"/\"\nmax_file_length: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.FileLimit)
	assert.Equal(t, "/", cfg.PathSep)
	// Invalid numbers degrade to the defaults instead of failing the run.
	assert.Equal(t, 190, cfg.MaxFileLength)
	assert.Equal(t, 250, cfg.MaxPathLength)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	// The defaults still come back so the caller can fall back cleanly.
	assert.Equal(t, 30000, cfg.FileLimit)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file_limit: [oops"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestCounterStartsAtOne(t *testing.T) {
	var c Counter
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 2, c.Count())
}
