package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.EqualValues(t, 64, cfg.TicksPerSlot)
	assert.EqualValues(t, 64, cfg.HashesPerTick)
	assert.Equal(t, 150, cfg.RecentHashWindow)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledgerd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr = ":9090"
leader_url = "http://127.0.0.1:8080"
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.LeaderURL)
	assert.EqualValues(t, 64, cfg.TicksPerSlot)
	assert.Equal(t, 150, cfg.RecentHashWindow)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
