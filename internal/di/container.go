// Package di wires the store, resolver, provider registry and sync engine
// shared by the CLI and the MCP server.
package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"sportspack/internal/adapters/providers"
	"sportspack/internal/adapters/sqlite"
	"sportspack/internal/application/commands"
	"sportspack/internal/application/inheritance"
	"sportspack/internal/config"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *sqlite.Store
	Resolver  *inheritance.Resolver
	Providers *providers.Registry
	Engine    *commands.SyncEngine
}

// Options adjust how the container is built
type Options struct {
	// DBPath overrides the configured database path
	DBPath string
	// FixturesPath makes every registered provider read events from a
	// YAML fixture file
	FixturesPath string
	// CacheCleanupInterval purges expired cache entries in the background.
	// Long-running processes should set it; zero disables the purge.
	CacheCleanupInterval time.Duration
}

// NewContainer opens the store and builds the services on top of it.
// The caller must Close the container.
func NewContainer(cfg *config.Config, logger *zap.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ConfigFile != "" {
		logger.Debug("loaded config", zap.String("path", cfg.ConfigFile))
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = sqlite.DefaultPath()
	}

	store := sqlite.NewStore()
	if err := store.Open(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Debug("opened store", zap.String("path", store.Path()))

	resolver := inheritance.NewResolver(store,
		inheritance.WithTTL(cfg.CacheTTL),
		inheritance.WithMaxDepth(cfg.MaxDepth),
		inheritance.WithCleanupInterval(opts.CacheCleanupInterval),
		inheritance.WithLogger(logger.Named("inheritance")),
	)

	registry := ProvideRegistry(cfg, logger, opts.FixturesPath)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Resolver:  resolver,
		Providers: registry,
		Engine:    commands.NewSyncEngine(store, resolver, registry, logger.Named("sync")),
	}, nil
}

// ProvideRegistry creates the default provider registry with credentials
// from cfg and, when fixturesPath is set, a fixture-backed fetch
func ProvideRegistry(cfg *config.Config, logger *zap.Logger, fixturesPath string) *providers.Registry {
	registry := providers.NewDefaultRegistry()
	providerLogger := logger.Named("providers")

	for _, name := range registry.Names() {
		registry.Configure(name, providers.WithLogger(providerLogger))
		if fixturesPath != "" {
			registry.Configure(name, providers.WithFetch(providers.FixtureFetch(fixturesPath)))
		}
	}

	for name, creds := range cfg.Providers {
		if !registry.Has(name) {
			logger.Warn("credentials configured for unknown provider", zap.String("provider", name))
			continue
		}
		registry.Configure(name, providers.WithCredentials(providers.Credentials(creds)))
	}
	return registry
}

// Close logs the resolver cache counters and releases the store
func (c *Container) Close() error {
	stats := c.Resolver.Stats()
	c.Logger.Debug("inheritance cache",
		zap.Int64("hits", stats.Hits),
		zap.Int64("misses", stats.Misses),
		zap.Int("entries", stats.Entries),
	)
	_ = c.Logger.Sync()
	return c.Store.Close()
}
