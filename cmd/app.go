/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"log/slog"
	"time"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/josephgoksu/monadgen/internal/telemetry"
	"github.com/spf13/afero"
)

// newCompleter builds the completion client. Tests replace it with a fake.
var newCompleter = func(cfg llm.Config) llm.Completer {
	return llm.NewChatCompleter(cfg)
}

// nowFunc is the clock handed to generators and the server.
var nowFunc = time.Now

// app bundles the collaborators shared by every command.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	store     *generation.Store
	registry  *generators.Registry
	orch      *generation.Orchestrator
	telemetry telemetry.Client
}

func newApp(cfg *config.Config, log *slog.Logger) *app {
	if log == nil {
		log = slog.Default()
	}

	store := generation.NewStore(cfg.Output.Dir)
	store.Now = nowFunc

	tc := telemetry.Client(telemetry.NewNoopClient())
	if cfg.Telemetry.Enabled {
		tcfg, err := telemetry.Load(afero.NewOsFs(), config.StateDir(), true)
		if err != nil {
			log.Debug("telemetry disabled", "error", err)
		} else {
			tc = telemetry.New(tcfg, cfg.Telemetry.APIKey, cfg.Telemetry.Endpoint, version)
		}
	}

	registry := generators.NewRegistry(generators.Deps{
		Completer:    newCompleter(cfg.LLMConfig("")),
		Store:        store,
		DefaultModel: cfg.DefaultModel(),
		Now:          nowFunc,
	})

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
		orch: &generation.Orchestrator{
			Preflight: cfg,
			Logger:    log,
			Telemetry: tc,
		},
		telemetry: tc,
	}
}

// appFromConfig builds the app from the configuration resolved by initApp.
func appFromConfig() (*app, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, appLogger), nil
}

func (a *app) close() {
	if a.telemetry != nil {
		_ = a.telemetry.Close()
	}
}
