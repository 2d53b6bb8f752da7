package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikalabs/walletchat/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"ai": {"providers": [{"provider": "openai", "data": {"api_key": "sk-test"}}]}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "gpt-4o-mini", cfg.AI.ChatModel)
	require.Equal(t, "text-embedding-3-small", cfg.AI.EmbedModel)
	require.Equal(t, 10000, cfg.AI.ReplyCacheSize)
	require.Equal(t, 2, cfg.AI.ReplyCacheTTLHours)
	require.Equal(t, "0 */6 * * *", cfg.WarmSpec)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadRejectsMissingPort(t *testing.T) {
	path := writeConfig(t, `{"ai": {"providers": [{"provider": "openai"}]}}`)
	_, err := config.Load(path)
	require.ErrorContains(t, err, "port is required")
}

func TestLoadRejectsMissingProviders(t *testing.T) {
	path := writeConfig(t, `{"port": 8080, "ai": {}}`)
	_, err := config.Load(path)
	require.ErrorContains(t, err, "ai.providers is required")
}

func TestLoadRejectsUnnamedProvider(t *testing.T) {
	path := writeConfig(t, `{"port": 8080, "ai": {"providers": [{"data": {}}]}}`)
	_, err := config.Load(path)
	require.ErrorContains(t, err, "provider is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
