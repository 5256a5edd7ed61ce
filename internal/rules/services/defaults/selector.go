package defaults

import (
	"slices"
	"strings"

	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

// Selector is the decomposed form of "<modes>:<types>".
//
// Modes and Types are only consulted when HasModes and HasTypes are set. A
// mode half made only of commas lists no modes and never matches.
type Selector struct {
	Modes    []string
	HasModes bool
	Types    []string
	HasTypes bool
}

// ParseSelector splits a selector string. Only the first two ':' parts are
// meaningful; trailing empty parts are dropped, so "creative:" has no type half.
func ParseSelector(s string) Selector {
	parts := splitTrimTrailing(s, ":")

	var sel Selector
	if len(parts) > 0 && parts[0] != "" {
		sel.HasModes = true
		sel.Modes = splitTrimTrailing(parts[0], ",")
	}
	if len(parts) > 1 {
		sel.HasTypes = true
		sel.Types = splitTrimTrailing(parts[1], ",")
	}
	return sel
}

// MatchesMode reports whether mode passes the mode half.
func (s Selector) MatchesMode(mode domain.GameMode) bool {
	if !s.HasModes {
		return true
	}
	for _, name := range s.Modes {
		if domain.ParseGameMode(name) == mode {
			return true
		}
	}
	return false
}

// Matches evaluates the selector for a (mode, world type) pair. The mode half
// is checked first and a mismatch fails closed before any type is inspected.
func (s Selector) Matches(mode domain.GameMode, worldType string) bool {
	if !s.MatchesMode(mode) {
		return false
	}
	if s.HasTypes {
		return slices.Contains(s.Types, worldType)
	}
	return true
}

// Matches reports whether selector applies to the given mode and world type.
func Matches(selector string, mode domain.GameMode, worldType string) bool {
	return ParseSelector(selector).Matches(mode, worldType)
}

// splitTrimTrailing splits s on sep and drops trailing empty elements.
func splitTrimTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
