package domain

import "fmt"

// Reserved top-level document keys with special parsing semantics.
const (
	// WorldBorderSize carries the initial world border size rather than a rule.
	WorldBorderSize = "WORLD_BORDER_SIZE"
	// ModeOrWorldTypeSpecific holds defaults keyed by selector strings.
	ModeOrWorldTypeSpecific = "MODE_OR_WORLD_TYPE_SPECIFIC"
)

// DefaultRuleEntry is one resolved default.
//
// Key is a host rule name or WorldBorderSize. Value is the textual form
// handed to the host store: JSON strings are unquoted to their content
// ("10" becomes 10), while numbers, booleans and compacted objects or arrays
// keep their literal JSON text. The WorldBorderSize value is the exception and
// stays raw, quotes included.
// Pure value type; copy freely.
type DefaultRuleEntry struct {
	Key    string
	Value  string
	Forced bool
}

// NewDefaultRuleEntry constructs an entry.
func NewDefaultRuleEntry(key, value string, forced bool) DefaultRuleEntry {
	return DefaultRuleEntry{Key: key, Value: value, Forced: forced}
}

// IsWorldBorder reports whether the entry targets the world border setter
// instead of the rule store.
func (e DefaultRuleEntry) IsWorldBorder() bool { return e.Key == WorldBorderSize }

// String returns a compact representation used in logs and test failures.
func (e DefaultRuleEntry) String() string {
	return fmt.Sprintf("(%s,%q,%t)", e.Key, e.Value, e.Forced)
}
