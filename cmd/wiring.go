package cmd

import (
	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/eccentric-easel/easel/internal/cataloging"
	"github.com/eccentric-easel/easel/internal/config"
	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/eccentric-easel/easel/internal/review"
)

// newPipeline loads configuration and credentials once and builds a pipeline
// around the given reviewer.
func newPipeline(configPath, locationOverride string, reviewer review.Reviewer) (*pipeline.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := pipeline.SettingsFrom(cfg, locationOverride)
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if err := env.RequireModelCredentials(); err != nil {
		return nil, err
	}
	if err := env.RequireCommerceCredentials(); err != nil {
		return nil, err
	}

	provider, err := cataloging.NewProvider(env)
	if err != nil {
		return nil, err
	}
	generator := cataloging.NewService(provider, env.Model(), env.HTTPTimeout)

	var opts []catalog.Option
	if cfg.ResizeUpload {
		opts = append(opts, catalog.WithResize(cfg.MaxImageDimension))
	}
	uploader := catalog.NewUploader(newCatalogClient(env), opts...)

	return pipeline.New(generator, reviewer, uploader, settings), nil
}

func newCatalogClient(env *config.Env) *catalog.Client {
	return catalog.NewClient(env.SquareEnvironment, env.SquareToken, env.HTTPTimeout)
}

// loadCommerceEnv is used by commands that only talk to the commerce platform
func loadCommerceEnv() (*config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if err := env.RequireCommerceCredentials(); err != nil {
		return nil, err
	}
	return env, nil
}
