// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-repo-search/internal/cache"
	"github.com/naka-gawa/github-repo-search/internal/config"
	"github.com/naka-gawa/github-repo-search/internal/gateway"
	"github.com/naka-gawa/github-repo-search/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-repo-search",
	Short: "Find your maintained, starred and watched GitHub repositories.",
	Long: `github-repo-search fuzzy-matches a query against the repositories you own,
star or watch on GitHub and prints ranked suggestions for the Alfred launcher.
Repositories are cached locally for 24 hours so repeated searches stay fast.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The token is checked before any cache or network access.
		if _, err := config.Load(); errors.Is(err, config.ErrMissingToken) {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	defaults := config.Defaults()
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("cache-dir", defaults.CacheDir, "Directory holding the repository cache")
	rootCmd.PersistentFlags().String("cache-backend", defaults.CacheBackend, "Cache backend: disk (persists between runs) or memory (lives only for this invocation, so nothing is reused)")
	rootCmd.PersistentFlags().Duration("ttl", defaults.TTL, "How long fetched repositories are cached")
	rootCmd.PersistentFlags().String("api", string(defaults.API), "GitHub API to use: rest or graphql")
}

// newLogger returns a logger writing to standard error, at debug level when verbose.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// loadConfig reads the environment and then applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("cache-dir") {
		cfg.CacheDir, _ = flags.GetString("cache-dir")
	}
	if flags.Changed("cache-backend") {
		cfg.CacheBackend, _ = flags.GetString("cache-backend")
	}
	if flags.Changed("ttl") {
		cfg.TTL, _ = flags.GetDuration("ttl")
	}
	if flags.Changed("api") {
		api, _ := flags.GetString("api")
		cfg.API = gateway.API(api)
	}
	if flags.Changed("min-confidence") {
		cfg.MinConfidence, _ = flags.GetInt("min-confidence")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func openStore(cfg config.Config, logger logrus.FieldLogger) (cache.Store, error) {
	if cfg.CacheBackend == config.CacheBackendMemory {
		return cache.NewMemory(cfg.TTL, logger), nil
	}
	return cache.OpenDisk(cfg.CacheDir, cfg.TTL, logger)
}

// newFinder wires the store, gateway and use cases for a single invocation.
// The returned close function flushes the cache and must be called before exit.
func newFinder(cmd *cobra.Command) (*usecase.Finder, config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	logger := newLogger(cmd)

	lister, err := gateway.New(cfg.API, cfg.Token, logger)
	if err != nil {
		return nil, config.Config{}, nil, errors.Wrap(err, "failed to create GitHub gateway")
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close cache")
		}
	}

	finder := usecase.NewFinder(store, usecase.NewAggregator(lister, logger), usecase.NewSuggester(nil), logger)
	return finder, cfg, closeFn, nil
}
