package main

import (
	"context"

	"github.com/bastiangx/ngramserve/internal/utils"
	"github.com/bastiangx/ngramserve/pkg/config"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/log"
)

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, "", err
	}
	if wordFile != "" {
		cfg.Data.WordFile = wordFile
	}
	if ngramFile != "" {
		cfg.Data.NgramFile = ngramFile
	}
	if noIndex {
		cfg.Data.BuildIndex = false
	}
	return cfg, path, nil
}

// engineOptions resolves the data files named by cfg.
func engineOptions(cfg *config.Config) (engine.Options, error) {
	pr, err := utils.NewPathResolver(config.AppName)
	if err != nil {
		return engine.Options{}, err
	}
	words, err := pr.ResolveDataFile(cfg.Data.WordFile)
	if err != nil {
		return engine.Options{}, err
	}
	ngrams, err := pr.ResolveDataFile(cfg.Data.NgramFile)
	if err != nil {
		return engine.Options{}, err
	}
	log.Debugf("Using word file %s and ngram file %s", words, ngrams)

	return engine.Options{
		WordFile:       words,
		NgramFile:      ngrams,
		BuildIndex:     cfg.Data.BuildIndex,
		WordIndex:      cfg.Data.WordIndex,
		StrictCapacity: cfg.Data.StrictCapacity,
		Advise:         cfg.Data.AccessPattern(),
		CacheSize:      cfg.Data.CacheSize,
	}, nil
}

// openEngine loads the config, opens the engine and registers it for
// release on interrupt.
func openEngine(ctx context.Context) (*engine.Engine, *config.Config, string, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, nil, "", err
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	e, err := engine.Open(ctx, opts)
	if err != nil {
		return nil, nil, "", err
	}
	onExit(func() { e.Close() })
	return e, cfg, path, nil
}
