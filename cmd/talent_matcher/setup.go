package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/dataset"
	"github.com/jonathan/talent-matcher/internal/db"
	"github.com/jonathan/talent-matcher/internal/logging"
	"github.com/jonathan/talent-matcher/internal/matcher"
	"github.com/jonathan/talent-matcher/internal/taxonomy"
)

var errNoSource = errors.New("no data source: set --dataset, dataset.path or database.url")

// loadConfig reads the config file and environment and builds the logger.
// --verbose forces debug logging.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// runtime bundles everything a command needs to talk to the matching service.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	source  matcher.DataSource
	service *matcher.Service
	closers []func()
}

// openRuntime loads config, connects the data source and cache, and builds the service.
// Callers must Close the returned runtime.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	rt := &runtime{cfg: cfg, logger: logger, closers: []func(){cancel, func() { _ = logger.Sync() }}}

	source, err := openSource(ctx, cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.source = source
	if closer, ok := source.(interface{ Close() }); ok {
		rt.closers = append(rt.closers, closer.Close)
	}

	tax, err := taxonomy.LoadOrDefault(cfg.Taxonomy.Path)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	store, closeStore := cache.Open(ctx, cache.Options{
		RedisURL:        cfg.Cache.RedisURL,
		MaxEntries:      cfg.Cache.MaxEntries,
		CleanupInterval: cfg.Cache.CleanupInterval,
	}, logger)
	rt.closers = append(rt.closers, func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	})

	rt.service, err = matcher.New(source,
		matcher.WithTaxonomy(tax),
		matcher.WithWeights(cfg.Engine.Weights),
		matcher.WithCache(cache.New(store, logger), cfg.Cache.TTL),
		matcher.WithLogger(logger),
		matcher.WithThreshold(cfg.Engine.MatchThreshold),
		matcher.WithPoolBounds(cfg.Engine.MaxPoolSize, cfg.Engine.Workers),
		matcher.WithBundleSize(cfg.Engine.BundleSize),
		matcher.WithRequestTimeout(cfg.Engine.RequestTimeout),
	)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to build matching service: %w", err)
	}
	return rt, nil
}

// openSource picks the data source: --dataset, then database.url, then dataset.path.
func openSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (matcher.DataSource, error) {
	switch {
	case datasetPath != "":
		return loadDataset(datasetPath, logger)
	case cfg.Database.URL != "":
		conn, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to database")
		return conn, nil
	case cfg.Dataset.Path != "":
		return loadDataset(cfg.Dataset.Path, logger)
	default:
		return nil, errNoSource
	}
}

func loadDataset(path string, logger *zap.Logger) (*dataset.Dataset, error) {
	d, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	candidates, jobs := d.Len()
	logger.Info("loaded dataset",
		zap.String("path", path),
		zap.Int("candidates", candidates),
		zap.Int("jobs", jobs))
	return d, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
