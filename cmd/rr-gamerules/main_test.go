package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haukened/rr-gamerules/internal/rules/config"
	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/repos/enforce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessDoc = `{
	"WORLD_BORDER_SIZE": 5000,
	"pvp": {"value": false, "forced": true},
	"doDaylightCycle": {"value": true, "forced": false},
	"MODE_OR_WORLD_TYPE_SPECIFIC": {
		"creative": {"doWeatherCycle": {"value": false, "forced": true}}
	}
}`

type recordingReporter struct {
	msgs []string
	errs []error
}

func (r *recordingReporter) ReportFatal(msg string, err error) {
	r.msgs = append(r.msgs, msg)
	r.errs = append(r.errs, err)
}

func testConfig(t *testing.T, doc string) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	if doc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "defaultgamerules.json"), []byte(doc), 0o644))
	}
	return &config.AppConfig{
		Env:          "dev",
		LogLevel:     "debug",
		ConfigDir:    configDir,
		Document:     "defaultgamerules.json",
		HandoffSize:  4,
		ForcedFPRate: 0.01,
		StoreDB:      filepath.Join(dir, "data", "gamerules.db"),
		WorldID:      "world",
		WorldMode:    "creative",
		WorldType:    domain.WorldTypeDefault,
	}
}

func TestRun_NewThenExistingWorld(t *testing.T) {
	cfg := testConfig(t, harnessDoc)
	reporter := &recordingReporter{}

	app, err := buildApplication(cfg, reporter)
	require.NoError(t, err)
	assert.True(t, app.newWorld)
	require.NoError(t, app.Run())

	assert.Equal(t, 5000, app.world.border.size)
	rules := app.world.Rules()
	require.IsType(t, &enforce.Store{}, rules)
	assert.ElementsMatch(t, []string{"pvp", "doWeatherCycle"}, rules.(*enforce.Store).Forced().Keys())
	v, _ := rules.Get("pvp")
	assert.Equal(t, "false", v)
	v, _ = rules.Get("doWeatherCycle")
	assert.Equal(t, "false", v)

	// A player edit to an unforced rule persists across reloads.
	require.NoError(t, rules.SetOrCreate("doDaylightCycle", "false"))
	require.NoError(t, app.Close())

	app, err = buildApplication(cfg, reporter)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	assert.False(t, app.newWorld)
	require.NoError(t, app.Run())

	assert.Equal(t, 0, app.world.border.size, "border is only applied at creation")
	v, _ = app.world.Rules().Get("doDaylightCycle")
	assert.Equal(t, "false", v)
	v, _ = app.world.Rules().Get("pvp")
	assert.Equal(t, "false", v)
	assert.Empty(t, reporter.msgs)
}

func TestRun_MissingDocumentUsesTemplate(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.WorldMode = "survival"

	app, err := buildApplication(cfg, &recordingReporter{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	require.NoError(t, app.Run())

	_, statErr := os.Stat(filepath.Join(cfg.ConfigDir, cfg.Document))
	require.NoError(t, statErr)
	assert.Equal(t, 60000000, app.world.border.size)
	v, ok := app.world.Rules().Get("doDaylightCycle")
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	assert.False(t, app.world.Rules().Has("doWeatherCycle"))
}

func TestRun_InvalidDocumentIsFatal(t *testing.T) {
	cfg := testConfig(t, `{"pvp": `)
	reporter := &recordingReporter{}

	app, err := buildApplication(cfg, reporter)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	err = app.Run()
	require.Error(t, err)
	require.NotEmpty(t, reporter.msgs)
	assert.Equal(t, "Failed to read default gamerules", reporter.msgs[0])
	_, isEnforced := app.world.Rules().(*enforce.Store)
	assert.False(t, isEnforced)
}

func TestBuildApplication_RejectsEscapingDocument(t *testing.T) {
	cfg := testConfig(t, harnessDoc)
	cfg.Document = "../outside.json"

	_, err := buildApplication(cfg, &recordingReporter{})
	require.Error(t, err)
}

func TestRun_FailedCreationIsRetriedOnNextRun(t *testing.T) {
	cfg := testConfig(t, `{"WORLD_BORDER_SIZE": "wide"}`)
	reporter := &recordingReporter{}

	app, err := buildApplication(cfg, reporter)
	require.NoError(t, err)
	assert.True(t, app.newWorld)
	require.Error(t, app.Run())
	assert.Equal(t, []string{"Failed to apply default world border size"}, reporter.msgs)
	require.NoError(t, app.Close())

	require.NoError(t, os.WriteFile(filepath.Join(cfg.ConfigDir, cfg.Document), []byte(harnessDoc), 0o644))

	app, err = buildApplication(cfg, reporter)
	require.NoError(t, err)
	assert.True(t, app.newWorld, "creation did not complete, so the world is still new")
	require.NoError(t, app.Run())
	assert.Equal(t, 5000, app.world.border.size)
	require.NoError(t, app.Close())

	app, err = buildApplication(cfg, reporter)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	assert.False(t, app.newWorld)
}
