package cmd

import (
	"context"
	"fmt"
	"io"

	chainstore "github.com/bnema/task-list-cli/internal/adapters/kv/chain"
	filestore "github.com/bnema/task-list-cli/internal/adapters/kv/file"
	pgstore "github.com/bnema/task-list-cli/internal/adapters/kv/postgres"
	tomlstore "github.com/bnema/task-list-cli/internal/adapters/kv/toml"
	tasksrender "github.com/bnema/task-list-cli/internal/adapters/render/tasks"
	"github.com/bnema/task-list-cli/internal/application"
	"github.com/bnema/task-list-cli/internal/config"
	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/logging"
	"github.com/bnema/task-list-cli/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type app struct {
	cfg      config.Config
	store    *application.TaskListStore
	theme    tasksrender.Theme
	logger   *log.Logger
	renderer func(domain.TaskList, tasksrender.RenderOptions) (string, error)
	closers  []func()
}

func (a *app) wire(ctx context.Context, opts rootOptions, stderr io.Writer) error {
	cfg, err := config.Load(viper.New(), opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(stderr, logging.Options{Level: cfg.Log.Level, Verbose: opts.verbose})
	if err != nil {
		return err
	}

	themeName := cfg.UI.Theme
	if opts.theme != "" {
		themeName = opts.theme
	}
	theme, err := tasksrender.LookupTheme(themeName)
	if err != nil {
		return err
	}

	kv, closer, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("wire %s storage: %w", cfg.Storage.Backend, err)
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	store := application.NewTaskListStore(kv, application.WithKey(cfg.Storage.Key))
	if err := store.Load(ctx); err != nil {
		return err
	}

	logger.Debug("loaded tasks",
		"backend", cfg.Storage.Backend,
		"key", cfg.Storage.Key,
		"count", store.Len(),
		"config", cfg.File,
	)

	a.cfg = cfg
	a.store = store
	a.theme = theme
	a.logger = logger
	a.renderer = tasksrender.Render
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (ports.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case config.BackendTOML:
		store, err := tomlstore.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.BackendFile:
		return filestore.NewStore(cfg.Dir), nil, nil
	case config.BackendChain:
		store, err := chainstore.NewTOMLFirstWithFileFallback(cfg.Path, cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.BackendPostgres:
		store, err := pgstore.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", domain.ErrUnsupportedBackend, cfg.Backend)
	}
}
