// Package config loads the bot configuration from TOML, environment and
// defaults, the same layering for every command.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration.
type Config struct {
	Discord struct {
		Token string `koanf:"token"`
	} `koanf:"discord"`

	GitHub struct {
		Token        string `koanf:"token"`
		DefaultOwner string `koanf:"default_owner"`
		DefaultRepo  string `koanf:"default_repo"`
		RateReserve  int    `koanf:"rate_reserve"`
	} `koanf:"github"`

	State struct {
		Path string `koanf:"path"`
	} `koanf:"state"`

	API struct {
		Listen string `koanf:"listen"`
	} `koanf:"api"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// LoadConfig loads the configuration from a file, environment variables
// with the TABLETBOT_ prefix, and built-in defaults, with the environment
// taking precedence over the file.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"github.default_owner": "OpenTabletDriver",
		"github.default_repo":  "OpenTabletDriver",
		"github.rate_reserve":  2,
		"state.path":           "./state.json",
		"log.level":            "info",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./tabletbot.toml", "$HOME/.tabletbot.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix TABLETBOT_
	k.Load(env.Provider("TABLETBOT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "TABLETBOT_")), "_", ".", 1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file.
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# TabletBot Configuration

[discord]
token = "your-discord-bot-token"

[github]
token = "your-github-token"
default_owner = "OpenTabletDriver"
default_repo = "OpenTabletDriver"
rate_reserve = 2

[state]
path = "./state.json"

[api]
# Uncomment to expose the status API.
# listen = "127.0.0.1:8080"

[log]
level = "info"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration.
func Validate(config *Config) error {
	if config.Discord.Token == "" {
		return fmt.Errorf("discord token is required")
	}

	if config.GitHub.DefaultOwner == "" || config.GitHub.DefaultRepo == "" {
		return fmt.Errorf("default repository owner and name are required")
	}

	if config.GitHub.RateReserve < 0 {
		return fmt.Errorf("rate reserve must not be negative")
	}

	if config.State.Path == "" {
		return fmt.Errorf("state path is required")
	}

	return nil
}
