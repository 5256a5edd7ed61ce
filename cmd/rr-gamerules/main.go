package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/haukened/rr-gamerules/internal/rules/common/log"
	"github.com/haukened/rr-gamerules/internal/rules/config"
	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/repos/enforce"
	"github.com/haukened/rr-gamerules/internal/rules/repos/handoff"
	"github.com/haukened/rr-gamerules/internal/rules/repos/ruledoc"
	"github.com/haukened/rr-gamerules/internal/rules/repos/rulestore/bolt"
	"github.com/haukened/rr-gamerules/internal/rules/services/defaults"
	"github.com/haukened/rr-gamerules/internal/rules/services/lifecycle"
)

const (
	version = "0.1.0-dev"
	appName = "rr-gamerules"

	// overrideAttempt is written to every forced key to show it is ignored.
	overrideAttempt = "overridden"
)

// Application holds the wired components and the simulated world.
type Application struct {
	config       *config.AppConfig
	db           *bolt.DB
	orchestrator *lifecycle.Orchestrator
	world        *simWorld
	newWorld     bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"config_dir": cfg.ConfigDir,
		"document":   cfg.Document,
		"store_db":   cfg.StoreDB,
		"world":      cfg.WorldID,
		"mode":       cfg.WorldMode,
		"world_type": cfg.WorldType,
	}, "Starting "+appName)

	app, err := buildApplication(cfg, logFatalReporter{logger: log.GetLogger()})
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}
	defer func() { _ = app.Close() }()

	if err := app.Run(); err != nil {
		log.Fatal(map[string]any{"error": err}, "World setup failed")
	}
}

// buildApplication opens storage and wires the lifecycle services.
func buildApplication(cfg *config.AppConfig, fatal lifecycle.FatalReporter) (*Application, error) {
	logger := log.GetLogger()

	source, err := ruledoc.NewFileSource(cfg.ConfigDir, cfg.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to create document source: %w", err)
	}

	hc, err := handoff.New(cfg.HandoffSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create hand-off cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StoreDB), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := bolt.Open(cfg.StoreDB, logger)
	if err != nil {
		return nil, err
	}

	created, err := db.Created(cfg.WorldID)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to inspect world %s: %w", cfg.WorldID, err)
	}
	rules, err := db.World(cfg.WorldID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	orch := lifecycle.New(lifecycle.Options{
		Resolver: defaults.NewResolver(defaults.ResolverOptions{Source: source, Logger: logger}),
		Handoff:  hc,
		Enforcer: enforce.NewFactory(cfg.ForcedFPRate),
		Fatal:    fatal,
		Document: source,
		Logger:   logger,
	})

	return &Application{
		config:       cfg,
		db:           db,
		orchestrator: orch,
		world: &simWorld{
			id:        cfg.WorldID,
			mode:      cfg.Mode(),
			worldType: cfg.WorldType,
			rules:     rules,
			border:    &simBorder{},
		},
		newWorld: !created,
	}, nil
}

// Run drives the host lifecycle for the configured world: creation when the
// world is new, then load, then an override attempt on every forced key.
func (app *Application) Run() error {
	if err := app.orchestrator.Init(); err != nil {
		return err
	}

	if app.newWorld {
		if err := app.orchestrator.OnCreateSpawn(app.world); err != nil {
			return fmt.Errorf("create spawn: %w", err)
		}
		if err := app.db.MarkCreated(app.world.ID()); err != nil {
			return err
		}
	}
	if err := app.orchestrator.OnWorldLoad(app.world); err != nil {
		return fmt.Errorf("world load: %w", err)
	}

	if err := app.verifyForced(); err != nil {
		return err
	}

	rules := app.world.Rules()
	final := make(map[string]any, len(rules.Keys()))
	for _, k := range rules.Keys() {
		v, _ := rules.Get(k)
		final[k] = v
	}
	log.Info(map[string]any{
		"new_world":   app.newWorld,
		"border_size": app.world.border.size,
		"rules":       final,
	}, "World ready")
	return nil
}

// verifyForced attempts to overwrite each forced key and checks the write
// was dropped.
func (app *Application) verifyForced() error {
	store, ok := app.world.Rules().(*enforce.Store)
	if !ok {
		return fmt.Errorf("world rule store is not enforced")
	}
	for _, key := range store.Forced().Keys() {
		before, _ := store.Get(key)
		if err := store.SetOrCreate(key, overrideAttempt); err != nil {
			return fmt.Errorf("override of %s: %w", key, err)
		}
		after, _ := store.Get(key)
		log.Debug(map[string]any{"key": key, "before": before, "after": after}, "Forced rule override dropped")
		if after != before {
			return fmt.Errorf("forced rule %s changed from %q to %q", key, before, after)
		}
	}
	return nil
}

func (app *Application) Close() error {
	return app.db.Close()
}

// simWorld is the overworld of a single-player save backed by the bolt store.
type simWorld struct {
	id        string
	mode      domain.GameMode
	worldType string
	rules     domain.RuleStore
	border    *simBorder
}

func (w *simWorld) ID() string                    { return w.id }
func (w *simWorld) Mode() domain.GameMode         { return w.mode }
func (w *simWorld) WorldType() string             { return w.worldType }
func (w *simWorld) Dimension() domain.Dimension   { return domain.DimensionOverworld }
func (w *simWorld) IsRemote() bool                { return false }
func (w *simWorld) Rules() domain.RuleStore       { return w.rules }
func (w *simWorld) SetRules(s domain.RuleStore)   { w.rules = s }
func (w *simWorld) Border() lifecycle.WorldBorder { return w.border }

type simBorder struct {
	size int
}

func (b *simBorder) SetSize(size int) { b.size = size }

// logFatalReporter is the harness's fatal channel: it logs at error level and
// leaves the exit to the caller, which receives the same error.
type logFatalReporter struct {
	logger log.Logger
}

func (r logFatalReporter) ReportFatal(msg string, err error) {
	r.logger.Error(map[string]any{"error": err, "fatal": true}, msg)
}
