// Package enforce provides the rule-store decorator that silently drops writes
// to forced keys.
package enforce

import (
	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/repos/forced"
	"github.com/haukened/rr-gamerules/internal/rules/services/lifecycle"
)

// Store decorates a rule store. Writes to keys in the bound forced set are
// no-ops; reads, enumeration and all other writes go to the wrapped store.
type Store struct {
	base   domain.RuleStore
	forced *forced.Set
}

// Wrap binds set to store. Wrapping a *Store rebinds its underlying store, so
// enforcement layers never stack: the newest forced set replaces the old one.
func Wrap(store domain.RuleStore, set *forced.Set) *Store {
	for {
		inner, ok := store.(*Store)
		if !ok {
			break
		}
		store = inner.base
	}
	if set == nil {
		set = forced.New(nil)
	}
	return &Store{base: store, forced: set}
}

func (s *Store) Get(key string) (string, bool) { return s.base.Get(key) }

func (s *Store) Has(key string) bool { return s.base.Has(key) }

func (s *Store) Keys() []string { return s.base.Keys() }

// SetOrCreate writes through unless key is forced.
func (s *Store) SetOrCreate(key, value string) error {
	if s.forced.Contains(key) {
		return nil
	}
	return s.base.SetOrCreate(key, value)
}

// Unwrap returns the decorated store.
func (s *Store) Unwrap() domain.RuleStore { return s.base }

// Forced returns the bound forced-key set.
func (s *Store) Forced() *forced.Set { return s.forced }

// factory implements lifecycle.Enforcer.
type factory struct {
	fpRate float64
}

// NewFactory returns an Enforcer whose forced sets use a bloom prefilter
// sized at fpRate.
func NewFactory(fpRate float64) lifecycle.Enforcer {
	return factory{fpRate: fpRate}
}

func (f factory) Enforce(store domain.RuleStore, forcedKeys []string) domain.RuleStore {
	return Wrap(store, forced.NewWithRate(forcedKeys, f.fpRate))
}

var (
	_ domain.RuleStore   = (*Store)(nil)
	_ domain.Unwrapper   = (*Store)(nil)
	_ lifecycle.Enforcer = factory{}
)
