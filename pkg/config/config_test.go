package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchal/s3console/pkg/config"
)

func TestReadYamlCnxFile_ValidFile(t *testing.T) {
	// Create a temporary test file with valid YAML
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "valid_config.yaml")

	validYaml := `
listenaddr: ":9090"
loglevel: debug
storepath: /var/lib/s3console/servers.json
scratchdir: /var/tmp/s3console
janitorspec: "@every 5m"
maxuploadsize: 1048576
`
	err := os.WriteFile(tmpFile, []byte(validYaml), 0644)
	require.NoError(t, err, "Failed to create test file")

	cfg, err := config.ReadYamlCnxFile(tmpFile)
	require.NoError(t, err, "ReadYamlCnxFile should not return an error for valid YAML")

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/lib/s3console/servers.json", cfg.StorePath)
	assert.Equal(t, "/var/tmp/s3console", cfg.ScratchDir)
	assert.Equal(t, "@every 5m", cfg.JanitorSpec)
	assert.Equal(t, int64(1048576), cfg.MaxUploadSize)
}

func TestReadYamlCnxFile_InvalidYaml(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidYaml := `
listenaddr: ":9090"
loglevel: [unclosed
`
	err := os.WriteFile(tmpFile, []byte(invalidYaml), 0644)
	require.NoError(t, err, "Failed to create test file")

	_, err = config.ReadYamlCnxFile(tmpFile)
	assert.Error(t, err, "ReadYamlCnxFile should return an error for invalid YAML")
}

func TestReadYamlCnxFile_MissingFile(t *testing.T) {
	_, err := config.ReadYamlCnxFile("/nonexistent/path/config.yaml")
	assert.Error(t, err, "ReadYamlCnxFile should return an error for a missing file")
}

func TestApplyDefaults(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()

	assert.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, config.DefaultStorePath, cfg.StorePath)
	assert.Equal(t, os.TempDir(), cfg.ScratchDir)
	assert.Equal(t, config.DefaultJanitorSpec, cfg.JanitorSpec)
	assert.Equal(t, int64(config.DefaultMaxUploadSize), cfg.MaxUploadSize)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := config.Config{
		ListenAddr: ":7000",
		ScratchDir: "/scratch",
	}
	cfg.ApplyDefaults()

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "/scratch", cfg.ScratchDir)
	assert.Equal(t, config.DefaultStorePath, cfg.StorePath)
}
