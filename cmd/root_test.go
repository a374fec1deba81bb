package cmd

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-repo-search/internal/config"
	"github.com/naka-gawa/github-repo-search/internal/gateway"
)

// newTestCommand returns a command carrying the same flags as the search command.
func newTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().Bool("verbose", false, "")
	c.Flags().String("cache-dir", "cache", "")
	c.Flags().String("cache-backend", config.CacheBackendDisk, "")
	c.Flags().Duration("ttl", 24*time.Hour, "")
	c.Flags().String("api", "rest", "")
	c.Flags().Int("min-confidence", 60, "")
	return c
}

func TestLoadConfig(t *testing.T) {
	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv(config.EnvToken, "t0ken")
		t.Setenv(config.EnvCacheDir, "/from/env")
		t.Setenv(config.EnvMinConfidence, "70")
		c := newTestCommand()
		require.NoError(t, c.Flags().Parse([]string{"--cache-dir", "/from/flag", "--api", "graphql", "--ttl", "2h"}))

		cfg, err := loadConfig(c)

		require.NoError(t, err)
		assert.Equal(t, "/from/flag", cfg.CacheDir)
		assert.Equal(t, gateway.GraphQL, cfg.API)
		assert.Equal(t, 2*time.Hour, cfg.TTL)
		assert.Equal(t, 70, cfg.MinConfidence)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv(config.EnvToken, "")
		c := newTestCommand()
		require.NoError(t, c.Flags().Parse(nil))

		_, err := loadConfig(c)

		assert.ErrorIs(t, err, config.ErrMissingToken)
	})

	t.Run("invalid flag value", func(t *testing.T) {
		t.Setenv(config.EnvToken, "t0ken")
		c := newTestCommand()
		require.NoError(t, c.Flags().Parse([]string{"--min-confidence", "150"}))

		_, err := loadConfig(c)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestOpenStore(t *testing.T) {
	cfg := config.Defaults()
	cfg.CacheBackend = config.CacheBackendMemory
	store, err := openStore(cfg, newLogger(newTestCommand()))
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	cfg = config.Defaults()
	cfg.CacheDir = t.TempDir()
	store, err = openStore(cfg, newLogger(newTestCommand()))
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

// TestMissingTokenExits runs the CLI in a child process, since the missing
// token check terminates the process.
func TestMissingTokenExits(t *testing.T) {
	if os.Getenv("REPO_SEARCH_RUN_CLI") == "1" {
		rootCmd.SetArgs(strings.Split(os.Getenv("REPO_SEARCH_CLI_ARGS"), " "))
		Execute()
		return
	}

	testCases := []struct {
		name string
		args string
	}{
		{name: "search", args: "search toolkit"},
		{name: "update-cache", args: "update-cache"},
		{name: "cache-info", args: "cache-info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cacheDir := filepath.Join(t.TempDir(), "cache")
			c := exec.Command(os.Args[0], "-test.run=^TestMissingTokenExits$")
			c.Env = append(os.Environ(),
				"REPO_SEARCH_RUN_CLI=1",
				"REPO_SEARCH_CLI_ARGS="+tc.args+" --cache-dir "+cacheDir,
				config.EnvToken+"=",
			)
			var stderr strings.Builder
			c.Stderr = &stderr

			err := c.Run()

			var exitErr *exec.ExitError
			require.True(t, errors.As(err, &exitErr), "expected non-zero exit, got %v", err)
			assert.Equal(t, 1, exitErr.ExitCode())
			assert.Equal(t, "Error: GITHUB_TOKEN environment variable is not set.\n", stderr.String())
			_, statErr := os.Stat(cacheDir)
			assert.True(t, os.IsNotExist(statErr), "cache directory must not be created")
		})
	}
}

func TestCacheBackendFlagUsage(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("cache-backend")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "persists between runs")
	assert.Contains(t, flag.Usage, "only for this invocation")
}
