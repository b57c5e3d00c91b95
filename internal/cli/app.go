// Package cli wires the settings, repositories and catalog used by the eve
// commands.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/catalog"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/build"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/infrastructure/config"
	"github.com/bnema/eve/internal/infrastructure/filesystem"
	"github.com/bnema/eve/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/eve/internal/infrastructure/schemahttp"
	"github.com/bnema/eve/internal/infrastructure/schemastore"
	"github.com/bnema/eve/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Logger    zerolog.Logger

	Repo    *filesystem.Adapter
	Schemas port.SchemaSource
	Catalog *catalog.Service
	// Snapshots is nil unless a schema backend is configured with
	// schemas.offline_cache.
	Snapshots port.SchemaSnapshotStore

	ctx       context.Context
	logCloser io.Closer
	db        *sql.DB
	mu        sync.RWMutex
}

// NewApp loads settings from configFile (empty means the XDG location) and
// builds the application dependencies.
func NewApp(configFile string, info build.Info) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	cfg := mgr.Get()

	logger, logCloser := logging.New(loggingConfig(cfg))
	ctx := logging.WithContext(context.Background(), logger)

	a := &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		BuildInfo: info,
		Logger:    logger,
		Repo:      filesystem.New(),
		ctx:       ctx,
		logCloser: logCloser,
	}

	schemas, source, err := a.schemaSource(cfg, info)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	cat := catalog.NewService(schemas, catalog.Hooks{
		ReportError: func(msg string) { logger.Warn().Msg(msg) },
	}, logger)

	logger.Debug().
		Str("settings", mgr.GetConfigFile()).
		Str("schemas", source).
		Msg("app initialized")

	a.Schemas = schemas
	a.Catalog = cat
	return a, nil
}

// schemaSource picks the schema backend when schemas.url is set, else the
// schema directory.
func (a *App) schemaSource(cfg *config.Config, info build.Info) (port.SchemaSource, string, error) {
	timeout := time.Duration(cfg.Schemas.FetchTimeoutSeconds) * time.Second
	if cfg.Schemas.URL != "" {
		client, err := schemahttp.New(cfg.Schemas.URL, "eve/"+info.Version, timeout)
		if err != nil {
			return nil, "", fmt.Errorf("schema backend: %w", err)
		}
		if cfg.Schemas.OfflineCache {
			if store := a.openSnapshots(); store != nil {
				client.WithSnapshots(store)
			}
		}
		return client, client.BaseURL(), nil
	}

	dir := cfg.Schemas.Dir
	if dir == "" {
		var err error
		if dir, err = config.GetSchemasDir(); err != nil {
			return nil, "", fmt.Errorf("resolve schemas dir: %w", err)
		}
	}
	return schemastore.New(afero.NewOsFs(), dir, timeout), dir, nil
}

// openSnapshots opens the snapshot database. Failures only disable the
// offline cache.
func (a *App) openSnapshots() port.SchemaSnapshotStore {
	path, err := config.GetSchemaCacheFile()
	if err != nil {
		a.Logger.Warn().Err(err).Msg("offline schema cache disabled")
		return nil
	}
	db, err := sqlite.NewConnection(a.ctx, path)
	if err != nil {
		a.Logger.Warn().Err(err).Str("path", path).Msg("offline schema cache disabled")
		return nil
	}
	a.db = db
	a.Snapshots = sqlite.NewSnapshotRepository(db)
	return a.Snapshots
}

func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Logging.Level, lc.Level)
	if cfg.Logging.Format != "" {
		lc.Format = cfg.Logging.Format
	}
	lc.TimeFormat = "15:04:05"
	lc.File = cfg.Logging.File
	if cfg.Logging.MaxSizeMB > 0 {
		lc.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups > 0 {
		lc.MaxBackups = cfg.Logging.MaxBackups
	}
	lc.Compress = cfg.Logging.Compress
	return logging.ApplyEnv(lc)
}

// EditorOptions builds the store options from the current settings. The
// component catalog is listed from the schema source; when it is
// unavailable the catalog is empty.
func (a *App) EditorOptions(ctx context.Context) editor.Options {
	a.mu.RLock()
	cfg := a.Config
	a.mu.RUnlock()
	components, err := a.Schemas.ListComponents(ctx)
	if err != nil {
		a.Logger.Debug().Err(err).Msg("component catalog unavailable")
	}
	return editor.Options{
		Registry:         document.NewRegistry(cfg.Editor.MarkerPrefix),
		CoreKeys:         cfg.Editor.CoreKeys,
		OptionalCoreKeys: cfg.Editor.OptionalCoreKeys,
		Components:       components,
		Logger:           a.Logger,
		DefaultName:      cfg.Editor.DefaultName,
		MaxHighlights:    cfg.Editor.MaxHighlights,
	}
}

// SetConfig swaps in reloaded settings. Later EditorOptions calls use them.
func (a *App) SetConfig(cfg *config.Config) {
	a.mu.Lock()
	a.Config = cfg
	a.mu.Unlock()
}

// WatchDebounce returns the configured watcher debounce.
func (a *App) WatchDebounce() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return time.Duration(a.Config.Watch.DebounceMs) * time.Millisecond
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
