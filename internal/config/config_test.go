package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[discord]\ntoken = \"abc\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "OpenTabletDriver", cfg.GitHub.DefaultOwner)
	assert.Equal(t, "OpenTabletDriver", cfg.GitHub.DefaultRepo)
	assert.Equal(t, 2, cfg.GitHub.RateReserve)
	assert.Equal(t, "./state.json", cfg.State.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[discord]
token = "abc"

[github]
default_owner = "acme"
default_repo = "widgets"
rate_reserve = 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Discord.Token)
	assert.Equal(t, "acme", cfg.GitHub.DefaultOwner)
	assert.Equal(t, 5, cfg.GitHub.RateReserve)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[discord]\ntoken = \"from-file\"\n")
	t.Setenv("TABLETBOT_DISCORD_TOKEN", "from-env")
	t.Setenv("TABLETBOT_GITHUB_DEFAULT_OWNER", "acme")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, "acme", cfg.GitHub.DefaultOwner)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[discord]\ntoken = \"abc\"\n"))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))

	cfg.Discord.Token = ""
	assert.Error(t, Validate(cfg))
}

func TestInitConfigRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabletbot.toml")

	require.NoError(t, InitConfig(path))
	assert.Error(t, InitConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "OpenTabletDriver", cfg.GitHub.DefaultOwner)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tabletbot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
