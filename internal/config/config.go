// Package config loads and validates the application configuration.
package config

import (
	"os"
	"strconv"
	"time"

	"emperror.dev/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/naka-gawa/github-repo-search/internal/cache"
	"github.com/naka-gawa/github-repo-search/internal/gateway"
)

// Environment variables read by Load.
const (
	EnvToken         = "GITHUB_TOKEN"
	EnvCacheDir      = "REPO_SEARCH_CACHE_DIR"
	EnvCacheBackend  = "REPO_SEARCH_CACHE_BACKEND"
	EnvCacheTTL      = "REPO_SEARCH_CACHE_TTL"
	EnvMinConfidence = "REPO_SEARCH_MIN_CONFIDENCE"
	EnvAPI           = "REPO_SEARCH_API"
)

// Cache backends.
const (
	CacheBackendDisk   = "disk"
	CacheBackendMemory = "memory"
)

const (
	defaultCacheDir      = "cache"
	defaultMinConfidence = 60
)

// ErrMissingToken is returned when no GitHub token is configured.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")

// Config holds everything a command needs to reach GitHub and the cache.
type Config struct {
	Token         string
	CacheDir      string
	CacheBackend  string
	TTL           time.Duration
	MinConfidence int
	API           gateway.API
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		CacheDir:      defaultCacheDir,
		CacheBackend:  CacheBackendDisk,
		TTL:           cache.DefaultTTL,
		MinConfidence: defaultMinConfidence,
		API:           gateway.REST,
	}
}

// Load builds a Config from defaults and the process environment.
// It fails with ErrMissingToken before looking at anything else.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	token, _ := lookup(EnvToken)
	if token == "" {
		return Config{}, ErrMissingToken
	}

	cfg := Defaults()
	cfg.Token = token
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		cfg.CacheDir = v
	}
	if v, ok := lookup(EnvCacheBackend); ok && v != "" {
		cfg.CacheBackend = v
	}
	if v, ok := lookup(EnvAPI); ok && v != "" {
		cfg.API = gateway.API(v)
	}
	if v, ok := lookup(EnvCacheTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid %s", EnvCacheTTL)
		}
		cfg.TTL = ttl
	}
	if v, ok := lookup(EnvMinConfidence); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid %s", EnvMinConfidence)
		}
		cfg.MinConfidence = n
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Token, validation.Required.Error("GitHub token is required")),
		validation.Field(&c.CacheBackend, validation.Required, validation.In(CacheBackendDisk, CacheBackendMemory)),
		validation.Field(&c.CacheDir, validation.When(c.CacheBackend == CacheBackendDisk, validation.Required)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.MinConfidence, validation.Min(0), validation.Max(100)),
		validation.Field(&c.API, validation.Required, validation.In(gateway.REST, gateway.GraphQL)),
	)
}
