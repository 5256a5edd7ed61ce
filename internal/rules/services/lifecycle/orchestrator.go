// Package lifecycle applies default rules at world creation and world load
// and installs forced-key enforcement on the loaded world's rule store.
package lifecycle

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/haukened/rr-gamerules/internal/rules/common/log"
	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

const (
	msgReadFailed   = "Failed to read default gamerules"
	msgInitFailed   = "Failed to handle default gamerules"
	msgBorderFailed = "Failed to apply default world border size"
	msgApplyFailed  = "Failed to apply default gamerule"
)

// ErrInvalidBorderSize is returned when WORLD_BORDER_SIZE is not an integer.
var ErrInvalidBorderSize = errors.New("invalid world border size")

// Orchestrator reacts to host lifecycle events. Handlers are expected to run
// on the host's simulation thread; they do no locking of their own.
type Orchestrator struct {
	resolver DefaultsResolver
	handoff  HandoffCache
	enforcer Enforcer
	fatal    FatalReporter
	document DocumentInitializer
	logger   log.Logger
}

type Options struct {
	Resolver DefaultsResolver
	Handoff  HandoffCache
	Enforcer Enforcer
	Fatal    FatalReporter
	Document DocumentInitializer
	Logger   log.Logger
}

func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Orchestrator{
		resolver: opts.Resolver,
		handoff:  opts.Handoff,
		enforcer: opts.Enforcer,
		fatal:    opts.Fatal,
		document: opts.Document,
		logger:   logger,
	}
}

// Init makes sure the rule document exists. Call once at startup.
func (o *Orchestrator) Init() error {
	if o.document == nil {
		return nil
	}
	if err := o.document.EnsureExists(); err != nil {
		return o.fail(msgInitFailed, err)
	}
	return nil
}

// OnCreateSpawn runs when a new world picks its spawn position. Only the
// overworld is handled. Every resolved default is applied unconditionally and
// the resolution is handed off to the world's next load.
func (o *Orchestrator) OnCreateSpawn(w World) error {
	if w.Dimension() != domain.DimensionOverworld {
		return nil
	}
	logger := o.worldLogger(w)

	entries, err := o.resolver.Defaults(w.Mode(), w.WorldType())
	if err != nil {
		o.handoff.Put(w.ID(), domain.Failed(err))
		return o.fail(msgReadFailed, err)
	}
	o.handoff.Put(w.ID(), domain.Resolved(entries))

	store := domain.BaseStore(w.Rules())
	for _, e := range entries {
		if e.IsWorldBorder() {
			size, err := parseBorderSize(e.Value)
			if err != nil {
				return o.fail(msgBorderFailed, err)
			}
			w.Border().SetSize(size)
			logger.Debug(map[string]any{"size": size}, "World border size applied")
			continue
		}
		if err := store.SetOrCreate(e.Key, e.Value); err != nil {
			return o.fail(msgApplyFailed, fmt.Errorf("rule %s: %w", e.Key, err))
		}
		logger.Debug(map[string]any{"key": e.Key, "value": e.Value}, "Default gamerule applied")
	}

	logger.Info(map[string]any{"entries": len(entries)}, "Default gamerules applied to new world")
	return nil
}

// OnWorldLoad runs on every world load, including the one right after
// creation. Defaults fill in rules the world does not have yet, forced keys are
// collected, and the world's store is replaced by the enforcing decorator.
// Remote worlds are ignored.
func (o *Orchestrator) OnWorldLoad(w World) error {
	if w.IsRemote() {
		return nil
	}
	logger := o.worldLogger(w)

	entries, err := o.loadEntries(w, logger)
	if err != nil {
		return o.fail(msgReadFailed, err)
	}

	store := domain.BaseStore(w.Rules())
	var forcedKeys []string
	applied := 0
	for _, e := range entries {
		if e.IsWorldBorder() {
			continue
		}
		if e.Forced {
			forcedKeys = append(forcedKeys, e.Key)
		}
		if store.Has(e.Key) {
			continue
		}
		if err := store.SetOrCreate(e.Key, e.Value); err != nil {
			return o.fail(msgApplyFailed, fmt.Errorf("rule %s: %w", e.Key, err))
		}
		applied++
	}

	w.SetRules(o.enforcer.Enforce(store, forcedKeys))
	logger.Info(map[string]any{
		"entries": len(entries),
		"applied": applied,
		"forced":  len(forcedKeys),
	}, "Default gamerules enforced on world load")
	return nil
}

// loadEntries consumes the hand-off left by creation. Only a successful
// resolution is reused; a failed or missing one is resolved again.
func (o *Orchestrator) loadEntries(w World, logger log.Logger) ([]domain.DefaultRuleEntry, error) {
	if r, ok := o.handoff.Take(w.ID()); ok {
		if r.IsResolved() {
			return r.Entries, nil
		}
		logger.Debug(map[string]any{"state": r.State.String()}, "Creation-time resolution unusable, resolving again")
	}
	return o.resolver.Defaults(w.Mode(), w.WorldType())
}

func (o *Orchestrator) worldLogger(w World) log.Logger {
	return o.logger.With(map[string]any{
		"world":      w.ID(),
		"mode":       w.Mode().String(),
		"world_type": w.WorldType(),
	})
}

// fail sends err to the fatal channel and returns it.
func (o *Orchestrator) fail(msg string, err error) error {
	o.logger.Error(map[string]any{"error": err}, msg)
	if o.fatal != nil {
		o.fatal.ReportFatal(msg, err)
	}
	return err
}

// parseBorderSize parses the raw border text as a 32-bit decimal integer.
func parseBorderSize(raw string) (int, error) {
	size, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidBorderSize, raw, err)
	}
	return int(size), nil
}
