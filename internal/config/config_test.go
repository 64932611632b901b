package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	for _, key := range []string{"TL_STORAGE_BACKEND", "TL_STORAGE_PATH", "TL_STORAGE_DIR", "TL_STORAGE_DSN", "TL_STORAGE_KEY", "TL_UI_THEME", "TL_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolateEnv(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, BackendTOML, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".local", "share", "tl", "tasks.toml"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(home, ".local", "share", "tl", "kv"), cfg.Storage.Dir)
	assert.Equal(t, "tasks", cfg.Storage.Key)
	assert.Equal(t, DefaultTheme, cfg.UI.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoadHonorsXDGDirectories(t *testing.T) {
	isolateEnv(t)
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "tl", "tasks.toml"), cfg.Storage.Path)
}

func TestLoadReadsDefaultConfigFile(t *testing.T) {
	home := isolateEnv(t)
	configDir := filepath.Join(home, ".config", "tl")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`[storage]
backend = "file"
dir = "~/todo"
key = "tarefas"

[ui]
theme = "Midnight"
`), 0o600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "todo"), cfg.Storage.Dir)
	assert.Equal(t, "tarefas", cfg.Storage.Key)
	assert.Equal(t, "midnight", cfg.UI.Theme)
	assert.Equal(t, filepath.Join(configDir, "config.toml"), cfg.File)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"paper\"\n"), 0o600))
	t.Setenv("TL_UI_THEME", "midnight")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "midnight", cfg.UI.Theme)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	isolateEnv(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "toml",
			cfg:  Config{Storage: StorageConfig{Backend: BackendTOML, Path: "/tmp/tasks.toml", Key: "tasks"}},
		},
		{
			name: "chain",
			cfg:  Config{Storage: StorageConfig{Backend: BackendChain, Path: "/tmp/tasks.toml", Dir: "/tmp/kv", Key: "tasks"}},
		},
		{
			name:    "missing key",
			cfg:     Config{Storage: StorageConfig{Backend: BackendTOML, Path: "/tmp/tasks.toml"}},
			wantErr: "storage.key is required",
		},
		{
			name:    "file without dir",
			cfg:     Config{Storage: StorageConfig{Backend: BackendFile, Key: "tasks"}},
			wantErr: "storage.dir is required",
		},
		{
			name:    "postgres without dsn",
			cfg:     Config{Storage: StorageConfig{Backend: BackendPostgres, Key: "tasks"}},
			wantErr: "storage.dsn is required",
		},
		{
			name:    "unknown backend",
			cfg:     Config{Storage: StorageConfig{Backend: "redis", Key: "tasks"}},
			wantErr: "unsupported storage backend",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateUnknownBackendWrapsSentinel(t *testing.T) {
	t.Parallel()

	err := Config{Storage: StorageConfig{Backend: "redis", Key: "tasks"}}.Validate()
	assert.ErrorIs(t, err, domain.ErrUnsupportedBackend)
}
