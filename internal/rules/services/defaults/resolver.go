// Package defaults selects the default rule entries that apply to a world.
package defaults

import (
	"fmt"

	"github.com/haukened/rr-gamerules/internal/rules/common/log"
	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/repos/ruledoc"
)

// Resolver reads the rule document on every call and resolves it for a world.
// It keeps no document cache.
type Resolver struct {
	source DocumentSource
	logger log.Logger
}

type ResolverOptions struct {
	Source DocumentSource
	Logger log.Logger
}

func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Resolver{
		source: opts.Source,
		logger: logger,
	}
}

// Defaults loads and resolves the document for (mode, worldType). Read and
// parse failures are returned; malformed entries are dropped silently.
func (r *Resolver) Defaults(mode domain.GameMode, worldType string) ([]domain.DefaultRuleEntry, error) {
	raw, created, err := r.source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read default gamerules: %w", err)
	}
	if created {
		r.logger.Info(nil, "Default gamerules document created from template")
		return nil, nil
	}

	doc, err := ruledoc.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default gamerules: %w", err)
	}

	entries := Resolve(doc, mode, worldType)
	r.logger.Debug(map[string]any{
		"mode":       mode.String(),
		"world_type": worldType,
		"nodes":      doc.Len(),
		"entries":    len(entries),
	}, "Resolved default gamerules")
	return entries, nil
}
