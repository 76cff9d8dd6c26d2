package factory

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"blockalloc/consts"
)

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regionBytes: 8192\npolicy: BestFit\nuseMmap: false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8192, cfg.RegionBytes)
	require.Equal(t, "BestFit", cfg.Policy)
	require.False(t, cfg.UseMmap)
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuild_HeapBackedRegion(t *testing.T) {
	cfg := Config{RegionBytes: int(consts.MinRegionSize) * 2, Policy: "FirstFit"}
	eng, release, err := Build(cfg, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, eng)
	defer require.NoError(t, release())

	report := eng.Validate()
	require.Equal(t, 1, report.BlockCount)
}

func TestBuild_RejectsUnknownPolicy(t *testing.T) {
	cfg := Config{RegionBytes: int(consts.MinRegionSize), Policy: "NoSuchFit"}
	_, _, err := Build(cfg, slog.Default())
	require.Error(t, err)
}
