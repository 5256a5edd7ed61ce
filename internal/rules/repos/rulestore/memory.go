// Package rulestore provides in-process implementations of domain.RuleStore.
package rulestore

import (
	"maps"
	"slices"
	"sync"

	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

// Memory is a map-backed rule store safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	rules map[string]string
}

// NewMemory creates a store seeded with a copy of initial.
func NewMemory(initial map[string]string) *Memory {
	rules := make(map[string]string, len(initial))
	maps.Copy(rules, initial)
	return &Memory{rules: rules}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.rules[key]
	return v, ok
}

func (m *Memory) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Memory) SetOrCreate(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[key] = value
	return nil
}

// Keys returns rule names in lexical order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.rules))
}

// Snapshot returns a copy of every rule.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.rules)
}

// Ensure Memory implements domain.RuleStore at compile time
var _ domain.RuleStore = (*Memory)(nil)
