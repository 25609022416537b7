// Package cli wires fsearch's dependencies for the command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/cli/styles"
	"github.com/bnema/fsearch/internal/domain/build"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/infrastructure/config"
	"github.com/bnema/fsearch/internal/infrastructure/favicon"
	"github.com/bnema/fsearch/internal/infrastructure/opener"
	"github.com/bnema/fsearch/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/fsearch/internal/infrastructure/tabs"
	"github.com/bnema/fsearch/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	manager *config.Manager
	Storage *sqlite.LazyStorage
	Tabs    *tabs.MemoryBrowser
	Opener  *opener.Opener

	// Use cases
	SuggestionsUC *usecase.SuggestionsUseCase
	SettingsUC    *usecase.SettingsUseCase
	OpenUC        *usecase.OpenRequestUseCase

	// Services
	FaviconService *favicon.Service

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies. Storage is
// opened lazily on first use.
func NewApp() (*App, error) {
	const dataDirPerm = 0o755

	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("FSEARCH_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}

	// Stdout and stderr belong to the terminal UI and the host stream, so
	// logs go to a rotated file.
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(logLevel), Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		logging.FileConfig{
			Enabled:    true,
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fsearch: file logging disabled: %v\n", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), dataDirPerm); err != nil {
		logCleanup()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	storage := sqlite.NewLazyStorage(cfg.Database.Path)

	browser := tabs.NewMemoryBrowser(seedTabs(cfg.Host.Tabs))
	urlOpener := opener.New(browser, opener.WithSystemBrowser(cfg.Host.SystemBrowser))

	var faviconService *favicon.Service
	if cfg.Favicon.Enabled {
		faviconCacheDir, _ := config.GetFaviconCacheDir()
		faviconService = favicon.NewService(faviconCacheDir, time.Duration(cfg.Favicon.TimeoutSeconds)*time.Second)
	}

	logger.Debug().Str("db_path", cfg.Database.Path).Int("tabs", len(cfg.Host.Tabs)).Msg("app initialized")

	return &App{
		Config:         cfg,
		Theme:          styles.NewTheme(),
		manager:        mgr,
		Storage:        storage,
		Tabs:           browser,
		Opener:         urlOpener,
		SuggestionsUC:  usecase.NewSuggestionsUseCase(storage),
		SettingsUC:     usecase.NewSettingsUseCase(storage),
		OpenUC:         usecase.NewOpenRequestUseCase(urlOpener),
		FaviconService: faviconService,
		ctx:            ctx,
		logCleanup:     logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.FaviconService != nil {
		a.FaviconService.Close()
	}
	var err error
	if a.Storage != nil {
		err = a.Storage.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ConfigFile returns the path of the config file in use.
func (a *App) ConfigFile() string {
	if a.manager == nil {
		file, _ := config.GetConfigFile()
		return file
	}
	return a.manager.GetConfigFile()
}

// WatchConfig reloads config.toml on change and hands every valid version
// to fn.
func (a *App) WatchConfig(fn func(*config.Config)) error {
	if a.manager == nil {
		return nil
	}
	a.manager.OnConfigChange(fn)
	return a.manager.Watch()
}

// loadConfig loads configuration from standard locations, falling back to
// defaults when the file cannot be used.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, withDefaultPaths(config.DefaultConfig())
	}

	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "fsearch: %v\nusing default configuration\n", err)
		return nil, withDefaultPaths(config.DefaultConfig())
	}

	return mgr, mgr.Get()
}

func withDefaultPaths(cfg *config.Config) *config.Config {
	if cfg.Database.Path == "" {
		cfg.Database.Path, _ = config.GetDatabaseFile()
	}
	if cfg.Logging.LogDir == "" {
		cfg.Logging.LogDir, _ = config.GetLogDir()
	}
	return cfg
}

func seedTabs(seeds []config.TabSeed) []entity.Tab {
	out := make([]entity.Tab, 0, len(seeds))
	for _, s := range seeds {
		faviconURL := s.FaviconURL
		if faviconURL == "" {
			faviconURL = favicon.PageFaviconURL(s.URL)
		}
		out = append(out, entity.Tab{Title: s.Title, URL: s.URL, Active: s.Active, FaviconURL: faviconURL})
	}
	return out
}
