package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/ngramserve/pkg/mmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
[data]
word_file = "/corpus/word.bin"
build_index = false

[cli]
show_ids = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/corpus/word.bin", cfg.Data.WordFile)
	assert.Equal(t, "ngram3.bin", cfg.Data.NgramFile)
	assert.False(t, cfg.Data.BuildIndex)
	assert.True(t, cfg.Data.WordIndex)
	assert.True(t, cfg.CLI.ShowIDs)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoadConfig_PartialRecovery(t *testing.T) {
	// cache_size has the wrong type, so strict decoding fails
	path := writeConfig(t, `
[data]
cache_size = "lots"
advise = "sequential"

[server]
max_results = 5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Data.CacheSize, cfg.Data.CacheSize)
	assert.Equal(t, "sequential", cfg.Data.Advise)
	assert.Equal(t, mmap.AccessSequential, cfg.Data.AccessPattern())
	assert.Equal(t, 5, cfg.Server.MaxResults)
}

func TestLoadConfig_Unparseable(t *testing.T) {
	path := writeConfig(t, "this is [not toml")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfig_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	results, words := 7, 3
	require.NoError(t, cfg.Update(path, &results, &words))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Server.MaxResults)
	assert.Equal(t, 3, reloaded.Server.MaxWords)

	require.NoError(t, cfg.Update("", nil, nil))
}

func TestLoadConfigWithPriority_CustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 3\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}
