package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sportspack/internal/domain"
)

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "SPORTSPACK"

	DefaultCacheTTL   = time.Hour
	DefaultSyncDays   = 30
	DefaultMaxDepth   = 64
	defaultConfigName = "config"
	defaultConfigDir  = "sportspack"
	providersKey      = "providers"
	credentialsSubKey = "credentials"
)

// Config holds settings loaded from the config file and environment
type Config struct {
	// DBPath is the SQLite database path; empty selects the adapter default
	DBPath      string
	CacheTTL    time.Duration
	DefaultDays int
	// MaxDepth bounds ancestor walks on malformed hierarchies
	MaxDepth int

	// Providers maps provider name to its credentials
	Providers map[string]map[string]string

	// ConfigFile is the file that was read, if any
	ConfigFile string
}

// DBPath returns the database path from the SPORTSPACK_DB env var, or ""
// when unset.
func DBPath() string {
	return os.Getenv(EnvPrefix + "_DB")
}

// Load reads configuration from path, or from the first config.yaml found
// in $XDG_CONFIG_HOME/sportspack and the working directory when path is
// empty. SPORTSPACK_* environment variables and a .env file override the
// file values. Credentials of the known providers can also be given as
// SPORTSPACK_PROVIDERS_<NAME>_CREDENTIALS_<KEY>.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", "")
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("default_days", DefaultSyncDays)
	v.SetDefault("max_depth", DefaultMaxDepth)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, defaultConfigDir))
		}
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		DBPath:      v.GetString("db"),
		CacheTTL:    v.GetDuration("cache_ttl"),
		DefaultDays: v.GetInt("default_days"),
		MaxDepth:    v.GetInt("max_depth"),
		Providers:   make(map[string]map[string]string),
		ConfigFile:  v.ConfigFileUsed(),
	}

	for name := range v.GetStringMap(providersKey) {
		key := strings.Join([]string{providersKey, name, credentialsSubKey}, ".")
		if creds := v.GetStringMapString(key); len(creds) > 0 {
			cfg.Providers[name] = creds
		}
	}
	for _, name := range domain.AllowedProviders {
		creds := envCredentials(name)
		if len(creds) == 0 {
			continue
		}
		if cfg.Providers[name] == nil {
			cfg.Providers[name] = make(map[string]string, len(creds))
		}
		for k, val := range creds {
			cfg.Providers[name][k] = val
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got: %s", c.CacheTTL)
	}
	if c.DefaultDays < 0 {
		return fmt.Errorf("default_days must not be negative, got: %d", c.DefaultDays)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got: %d", c.MaxDepth)
	}
	return nil
}

// envCredentials collects SPORTSPACK_PROVIDERS_<NAME>_CREDENTIALS_<KEY>
// variables. Viper cannot enumerate env keys it was not told about.
func envCredentials(provider string) map[string]string {
	prefix := strings.ToUpper(strings.Join([]string{EnvPrefix, providersKey, provider, credentialsSubKey}, "_")) + "_"

	creds := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		if key := strings.ToLower(strings.TrimPrefix(name, prefix)); key != "" {
			creds[key] = value
		}
	}
	return creds
}
