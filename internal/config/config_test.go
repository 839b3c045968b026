package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
lgtm:
  nonce: "aaa"
  long_session: "bbb"
  short_session: "ccc"
  api_version: "1781"
github:
  token: "file-token"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "aaa", cfg.LGTM.Nonce)
	assert.Equal(t, "bbb", cfg.LGTM.LongSession)
	assert.Equal(t, "ccc", cfg.LGTM.ShortSession)
	assert.Equal(t, "1781", cfg.LGTM.APIVersion)
	assert.Equal(t, "file-token", cfg.GitHub.Token)
}

func TestLoadMissingKey(t *testing.T) {
	path := writeConfig(t, `
lgtm:
  nonce: "aaa"
  long_session: "bbb"
  api_version: "1781"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lgtm.short_session")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "lgtm: [not: a: mapping")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestGitHubTokenPrefersEnvironment(t *testing.T) {
	cfg := &Config{GitHub: GitHub{Token: "file-token"}}

	t.Setenv("GITHUB_TOKEN", "env-token")
	assert.Equal(t, "env-token", cfg.GitHubToken())

	t.Setenv("GITHUB_TOKEN", "")
	assert.Equal(t, "file-token", cfg.GitHubToken())
}
