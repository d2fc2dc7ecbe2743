package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trilemma-dev/Required-sub000/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqlang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("superscript: false\ntest_concurrency: 8\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Superscript)
	require.Equal(t, 8, cfg.TestConcurrency)
}
