package domain

import (
	"fmt"
	"strconv"
)

// GameMode identifies a host game mode by its numeric id.
type GameMode int

const (
	// GameModeInvalid is returned for names that do not resolve. It never
	// equals the mode of a real world.
	GameModeInvalid GameMode = -2
	// GameModeNotSet is the host's "no mode" value.
	GameModeNotSet GameMode = -1

	GameModeSurvival  GameMode = 0
	GameModeCreative  GameMode = 1
	GameModeAdventure GameMode = 2
	GameModeSpectator GameMode = 3
)

type gameModeNames struct {
	name  string
	short string
}

var gameModes = map[GameMode]gameModeNames{
	GameModeSurvival:  {name: "survival", short: "s"},
	GameModeCreative:  {name: "creative", short: "c"},
	GameModeAdventure: {name: "adventure", short: "a"},
	GameModeSpectator: {name: "spectator", short: "sp"},
}

// String returns the canonical mode name.
func (m GameMode) String() string {
	if n, ok := gameModes[m]; ok {
		return n.name
	}
	switch m {
	case GameModeNotSet:
		return "notset"
	case GameModeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("GameMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the playable modes.
func (m GameMode) Valid() bool {
	_, ok := gameModes[m]
	return ok
}

// GameModeByID maps a numeric id to a mode. Unknown ids yield GameModeInvalid.
func GameModeByID(id int) GameMode {
	m := GameMode(id)
	if m.Valid() {
		return m
	}
	return GameModeInvalid
}

// ParseGameMode resolves a mode as the host does: canonical name, short name
// or plain decimal id (no sign, no leading zeros). Names are matched exactly
// and case-sensitively. Anything else resolves to GameModeInvalid.
func ParseGameMode(s string) GameMode {
	if s == "" {
		return GameModeInvalid
	}
	for m, n := range gameModes {
		if s == n.name || s == n.short {
			return m
		}
	}
	if id, err := strconv.Atoi(s); err == nil && strconv.Itoa(id) == s {
		return GameModeByID(id)
	}
	return GameModeInvalid
}
