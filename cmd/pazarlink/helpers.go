package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pazarlink/pazarlink/internal/config"
	"github.com/pazarlink/pazarlink/internal/model"
	"github.com/pazarlink/pazarlink/internal/pattern"
	"github.com/pazarlink/pazarlink/internal/storage"
)

// initCatalog opens the catalog database and runs migrations.
func initCatalog(ctx context.Context) (*storage.SQLiteCatalog, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteCatalog(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// detectorOptions builds detector options from configuration.
func detectorOptions() pattern.Options {
	opts := pattern.DefaultOptions()
	opts.MinGroupSize = viper.GetInt("detector.min_group_size")
	opts.MinConfidence = viper.GetInt("detector.min_confidence")
	opts.MaxPatternLength = viper.GetInt("detector.max_pattern_length")
	opts.SmartExclusions = viper.GetBool("detector.smart_exclusions")
	if separators := viper.GetStringSlice("detector.separators"); len(separators) > 0 {
		opts.Separators = separators
	}
	if tokens := viper.GetStringSlice("detector.exclusion_tokens"); len(tokens) > 0 {
		opts.ExclusionTokens = tokens
	}
	return opts
}

// configuredRules loads custom extraction rules from configuration.
func configuredRules() ([]model.ExtractionRule, error) {
	var rules []model.ExtractionRule
	if err := viper.UnmarshalKey("detector.rules", &rules); err != nil {
		return nil, fmt.Errorf("failed to parse extraction rules: %w", err)
	}
	return rules, nil
}
