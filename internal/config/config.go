// Package config resolves tl settings from the config file, TL_* environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	// AppName is the directory name used under the XDG config and data homes.
	AppName = "tl"

	configName = "config"
	configType = "toml"
	envPrefix  = "TL"

	BackendTOML     = "toml"
	BackendFile     = "file"
	BackendChain    = "chain"
	BackendPostgres = "postgres"

	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyStorageDir     = "storage.dir"
	KeyStorageDSN     = "storage.dsn"
	KeyStorageKey     = "storage.key"
	KeyUITheme        = "ui.theme"
	KeyLogLevel       = "log.level"

	DefaultTheme    = "aurora"
	DefaultLogLevel = "warn"
	DefaultKey      = "tasks"
)

type Config struct {
	Storage StorageConfig
	UI      UIConfig
	Log     LogConfig

	// File is the config file that was read, empty when none was found.
	File string
}

type StorageConfig struct {
	Backend string
	Path    string
	Dir     string
	DSN     string
	Key     string
}

type UIConfig struct {
	Theme string
}

type LogConfig struct {
	Level string
}

// Load reads configuration into v. An explicit configFile must exist; the
// default config file is optional.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	dataDir := DefaultDataDir()
	v.SetDefault(KeyStorageBackend, BackendTOML)
	v.SetDefault(KeyStoragePath, filepath.Join(dataDir, "tasks.toml"))
	v.SetDefault(KeyStorageDir, filepath.Join(dataDir, "kv"))
	v.SetDefault(KeyStorageDSN, "")
	v.SetDefault(KeyStorageKey, DefaultKey)
	v.SetDefault(KeyUITheme, DefaultTheme)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Path:    expandHome(v.GetString(KeyStoragePath)),
			Dir:     expandHome(v.GetString(KeyStorageDir)),
			DSN:     v.GetString(KeyStorageDSN),
			Key:     strings.TrimSpace(v.GetString(KeyStorageKey)),
		},
		UI:   UIConfig{Theme: strings.ToLower(strings.TrimSpace(v.GetString(KeyUITheme)))},
		Log:  LogConfig{Level: strings.TrimSpace(v.GetString(KeyLogLevel))},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Storage.Key == "" {
		return fmt.Errorf("%s is required", KeyStorageKey)
	}

	switch c.Storage.Backend {
	case BackendTOML:
		if c.Storage.Path == "" {
			return fmt.Errorf("%s is required for the %s backend", KeyStoragePath, BackendTOML)
		}
	case BackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%s is required for the %s backend", KeyStorageDir, BackendFile)
		}
	case BackendChain:
		if c.Storage.Path == "" || c.Storage.Dir == "" {
			return fmt.Errorf("%s and %s are required for the %s backend", KeyStoragePath, KeyStorageDir, BackendChain)
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%s is required for the %s backend", KeyStorageDSN, BackendPostgres)
		}
	default:
		return fmt.Errorf("%w %q", domain.ErrUnsupportedBackend, c.Storage.Backend)
	}

	return nil
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
