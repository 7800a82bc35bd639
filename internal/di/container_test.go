package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sportspack/internal/application/commands"
	"sportspack/internal/config"
	"sportspack/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		CacheTTL:    config.DefaultCacheTTL,
		DefaultDays: config.DefaultSyncDays,
		Providers: map[string]map[string]string{
			domain.ProviderStatsPerform: {"api_key": "secret"},
			"unknown":                   {"api_key": "x"},
		},
	}
}

func TestProvideRegistry_Credentials(t *testing.T) {
	registry := ProvideRegistry(testConfig(), zap.NewNop(), "")

	sp, ok := registry.Lookup(domain.ProviderStatsPerform)
	require.True(t, ok)
	assert.True(t, sp.IsConfigured())

	hs, ok := registry.Lookup(domain.ProviderHeimspiel)
	require.True(t, ok)
	assert.False(t, hs.IsConfigured())

	assert.False(t, registry.Has("unknown"))
}

func TestNewContainer_SyncFromFixtures(t *testing.T) {
	fixtures := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(fixtures, []byte(`
X1:
  - remote_id: E1
    title: Final
`), 0o644))

	c, err := NewContainer(testConfig(), nil, Options{
		DBPath:       filepath.Join(t.TempDir(), "test.db"),
		FixturesPath: fixtures,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	root, err := commands.NewCreateNodeCommand(c.Store, c.Resolver, "", "", "Champions League", map[string]string{
		"remote_provider": domain.ProviderStatsPerform,
		"remote_id":       "X1",
	}).Execute(ctx)
	require.NoError(t, err)

	res, err := commands.NewSyncEventsCommand(c.Engine, root.Node.ID, 14, "").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	children, err := c.Store.GetChildren(ctx, root.Node.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Final", children[0].Title)
}

func TestContainer_LogsConfigAndCacheStats(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := testConfig()
	cfg.ConfigFile = "/etc/sportspack/config.yaml"

	c, err := NewContainer(cfg, zap.New(core), Options{
		DBPath:               filepath.Join(t.TempDir(), "test.db"),
		CacheCleanupInterval: time.Minute,
	})
	require.NoError(t, err)

	_, err = c.Resolver.Resolve(context.Background(), "missing", domain.AttrLogo)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	loaded := logs.FilterMessage("loaded config").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, cfg.ConfigFile, loaded[0].ContextMap()["path"])

	stats := logs.FilterMessage("inheritance cache").All()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].ContextMap()["misses"])
	assert.Equal(t, int64(1), stats[0].ContextMap()["entries"])
}
