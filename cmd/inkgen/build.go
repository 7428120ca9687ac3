package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"inkgen"
	"inkgen/views"
)

// fileConfig is the shape of site.yaml: the site constants plus the three
// directories and the parser worker cap.
type fileConfig struct {
	Site       inkgen.SiteConfig `yaml:"site"`
	ContentDir string            `yaml:"contentDir"`
	OutputDir  string            `yaml:"outputDir"`
	StaticDir  string            `yaml:"staticDir"`
	Workers    int               `yaml:"workers"`
}

func runBuild(configPath string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := loadFileConfig(configPath)
	if err != nil {
		log.Error().Err(err).Str("config", configPath).Msg("cannot read site config")
		return err
	}

	opts := []inkgen.Option{inkgen.WithLogger(log)}
	if cfg.ContentDir != "" {
		opts = append(opts, inkgen.WithContentDir(cfg.ContentDir))
	}
	if cfg.OutputDir != "" {
		opts = append(opts, inkgen.WithOutputDir(cfg.OutputDir))
	}
	if cfg.StaticDir != "" {
		opts = append(opts, inkgen.WithStaticDir(cfg.StaticDir))
	}
	if cfg.Workers > 0 {
		opts = append(opts, inkgen.WithWorkers(cfg.Workers))
	}

	site := inkgen.New(cfg.Site, views.Default(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := site.Build(ctx); err != nil {
		log.Error().Err(err).Msg("build failed")
		return err
	}
	return nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
