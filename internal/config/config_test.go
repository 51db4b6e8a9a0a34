package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, name := range []string{EnvWidth, EnvHeight, EnvCellSize, EnvExportDir, EnvExportScale, EnvFramebuffer, EnvInputGlob, EnvListenAddr, EnvGalleryHost, EnvDevMode, EnvStdioLog} {
		t.Setenv(name, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvWidth, "320")
	t.Setenv(EnvHeight, "240")
	t.Setenv(EnvCellSize, "8")
	t.Setenv(EnvExportDir, "/tmp/pixels")
	t.Setenv(EnvListenAddr, ":8080")
	t.Setenv(EnvDevMode, "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, 8, cfg.CellSize)
	assert.Equal(t, "/tmp/pixels", cfg.ExportDir)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.True(t, cfg.DevMode)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv(EnvCellSize, "big")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv(EnvCellSize, "0")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv(EnvCellSize, "")
	t.Setenv(EnvDevMode, "maybe")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PIXELPAD_EXPORT_SCALE=4\n"), 0o644))
	t.Setenv(EnvExportScale, "")
	require.NoError(t, os.Unsetenv(EnvExportScale))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ExportScale)
}
