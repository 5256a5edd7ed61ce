package lifecycle

import "github.com/haukened/rr-gamerules/internal/rules/domain"

// World is the host's view of a world instance as seen by the lifecycle
// handlers.
type World interface {
	// ID identifies the world; creation and load of the same world share it.
	ID() string
	Mode() domain.GameMode
	WorldType() string
	Dimension() domain.Dimension
	// IsRemote is true for client-side mirrors of a world.
	IsRemote() bool

	Rules() domain.RuleStore
	// SetRules replaces the world's rule store.
	SetRules(domain.RuleStore)

	Border() WorldBorder
}

// WorldBorder is the host's world-border size setter.
type WorldBorder interface {
	SetSize(size int)
}

// FatalReporter is the host's fatal-error channel. Reporting aborts the
// lifecycle step in progress; what happens next is host policy.
type FatalReporter interface {
	ReportFatal(msg string, err error)
}

// DefaultsResolver returns the defaults that apply to a mode and world type.
type DefaultsResolver interface {
	Defaults(mode domain.GameMode, worldType string) ([]domain.DefaultRuleEntry, error)
}

// HandoffCache carries a resolution from a world's creation to its next load.
// Take removes what it returns.
type HandoffCache interface {
	Put(worldID string, r domain.Resolution)
	Take(worldID string) (domain.Resolution, bool)
}

// Enforcer installs the interception layer that drops writes to forced keys.
type Enforcer interface {
	Enforce(store domain.RuleStore, forcedKeys []string) domain.RuleStore
}

// DocumentInitializer makes sure the rule document exists at startup.
type DocumentInitializer interface {
	EnsureExists() error
}
