package main

import (
	"fmt"
	"net/http"

	"github.com/ShayCichocki/maestro/internal/adapter"
	"github.com/ShayCichocki/maestro/internal/combine"
	"github.com/ShayCichocki/maestro/internal/config"
	"github.com/ShayCichocki/maestro/internal/executor"
	"github.com/ShayCichocki/maestro/internal/history"
	"github.com/ShayCichocki/maestro/internal/llm"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/internal/planner"
	"github.com/ShayCichocki/maestro/internal/registry"
	"github.com/ShayCichocki/maestro/internal/supervisor"
	"github.com/ShayCichocki/maestro/internal/tasks"
)

// app bundles the wired pipeline and the resources that need closing.
type app struct {
	cfg        *config.Config
	registry   *registry.Registry
	supervisor *supervisor.Supervisor
	store      *history.Store
	log        *logging.Logger
}

// buildApp loads configuration and wires the full pipeline.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.Nop()
	if debugLogPath != "" {
		log, err = logging.New(debugLogPath)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
	}

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("load agent registry: %w", err)
	}
	if cfg.Registry.Watch {
		if err := reg.Watch(func(err error) {
			log.Log("[registry] reload failed: %v", err)
		}); err != nil {
			log.Log("[registry] watch unavailable: %v", err)
		}
	}

	completer, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		reg.Close()
		log.Close()
		return nil, fmt.Errorf("configure llm provider: %w", err)
	}

	var store *history.Store
	if cfg.History.DBPath != "" {
		store, err = history.OpenStore(cfg.History.DBPath)
		if err != nil {
			reg.Close()
			log.Close()
			return nil, fmt.Errorf("open history store: %w", err)
		}
	}

	caller := adapter.NewCaller(http.DefaultClient, log)

	sup := supervisor.New(supervisor.Config{
		Registry:   reg,
		Planner:    planner.New(completer, log),
		Executor:   executor.New(caller, log),
		Combiner:   combine.New(completer, log),
		Summarizer: history.NewSummarizer(completer, log),
		Store:      store,
		Tasks:      tasks.NewClient(cfg.Tasks.Endpoint, nil),
		Log:        log,
	})

	return &app{
		cfg:        cfg,
		registry:   reg,
		supervisor: sup,
		store:      store,
		log:        log,
	}, nil
}

// close releases the app's resources.
func (a *app) close() {
	a.registry.Close()
	if a.store != nil {
		a.store.Close()
	}
	a.log.Close()
}
