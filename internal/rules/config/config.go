package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

// AppDirName is the directory created under the XDG config and data homes.
const AppDirName = "randomconfigs"

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ConfigDir is the directory holding the rule document.
	ConfigDir string `koanf:"config_dir" validate:"required"`

	// Document is the rule document's file name inside ConfigDir.
	Document string `koanf:"document" validate:"required,json_file"`

	// HandoffSize bounds how many created-but-not-yet-loaded worlds keep their
	// creation-time resolution. Zero disables the hand-off.
	HandoffSize int `koanf:"handoff_size" validate:"gte=0"`

	// ForcedFPRate is the bloom prefilter false-positive target for forced keys.
	ForcedFPRate float64 `koanf:"forced_fp_rate" validate:"gt=0,lt=1"`

	// StoreDB is the bbolt database holding world rule stores.
	StoreDB string `koanf:"store_db" validate:"required"`

	// WorldID, WorldMode and WorldType describe the world the harness loads.
	WorldID   string `koanf:"world_id" validate:"required"`
	WorldMode string `koanf:"world_mode" validate:"required,game_mode"`
	WorldType string `koanf:"world_type" validate:"required"`
}

// DEFAULT_APP_CONFIG defines the defaults applied before the environment.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:          "prod",
	LogLevel:     "info",
	ConfigDir:    filepath.Join(xdg.ConfigHome, AppDirName),
	Document:     "defaultgamerules.json",
	HandoffSize:  16,
	ForcedFPRate: 0.01,
	StoreDB:      filepath.Join(xdg.DataHome, AppDirName, "gamerules.db"),
	WorldID:      "world",
	WorldMode:    "survival",
	WorldType:    domain.WorldTypeDefault,
}

// Mode returns the configured world mode.
func (c *AppConfig) Mode() domain.GameMode {
	return domain.ParseGameMode(c.WorldMode)
}

// validJSONFile accepts bare file names ending in ".json".
func validJSONFile(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return strings.HasSuffix(name, ".json") && len(name) > len(".json")
}

// validGameMode accepts anything domain.ParseGameMode resolves.
func validGameMode(fl validator.FieldLevel) bool {
	return domain.ParseGameMode(fl.Field().String()).Valid()
}

// envLoader loads environment variables with the prefix "RULES_", lowercasing
// keys and stripping the prefix. It can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "RULES_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "RULES_")), strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "json_file" and "game_mode" tags.
var registerValidation = func(v *validator.Validate) error {
	if err := v.RegisterValidation("json_file", validJSONFile); err != nil {
		return err
	}
	return v.RegisterValidation("game_mode", validGameMode)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
