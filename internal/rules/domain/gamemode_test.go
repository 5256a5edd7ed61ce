package domain

import "testing"

func TestParseGameMode(t *testing.T) {
	tests := []struct {
		in   string
		want GameMode
	}{
		{"survival", GameModeSurvival},
		{"creative", GameModeCreative},
		{"adventure", GameModeAdventure},
		{"spectator", GameModeSpectator},
		{"s", GameModeSurvival},
		{"c", GameModeCreative},
		{"a", GameModeAdventure},
		{"sp", GameModeSpectator},
		{"0", GameModeSurvival},
		{"1", GameModeCreative},
		{"2", GameModeAdventure},
		{"3", GameModeSpectator},
		{"4", GameModeInvalid},
		{"-1", GameModeInvalid},
		{"+1", GameModeInvalid},
		{"01", GameModeInvalid},
		{"00", GameModeInvalid},
		{"-0", GameModeInvalid},
		{"", GameModeInvalid},
		{"Creative", GameModeInvalid},
		{" creative", GameModeInvalid},
		{"hardcore", GameModeInvalid},
	}
	for _, tt := range tests {
		if got := ParseGameMode(tt.in); got != tt.want {
			t.Errorf("ParseGameMode(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestGameMode_StringAndValid(t *testing.T) {
	tests := []struct {
		mode  GameMode
		str   string
		valid bool
	}{
		{GameModeSurvival, "survival", true},
		{GameModeSpectator, "spectator", true},
		{GameModeNotSet, "notset", false},
		{GameModeInvalid, "invalid", false},
		{GameMode(42), "GameMode(42)", false},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.str {
			t.Errorf("String() = %q; want %q", got, tt.str)
		}
		if got := tt.mode.Valid(); got != tt.valid {
			t.Errorf("%v.Valid() = %v; want %v", tt.mode, got, tt.valid)
		}
	}
}

func TestGameModeByID(t *testing.T) {
	if GameModeByID(1) != GameModeCreative {
		t.Fatalf("expected creative for id 1")
	}
	if GameModeByID(-1) != GameModeInvalid {
		t.Fatalf("expected invalid for id -1")
	}
}
