package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/docview/internal/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(EnvPrefix+"CONFIG_PATH", "")
	colors.SetOutput(io.Discard, io.Discard)
	t.Cleanup(func() {
		colors.SetOutput(nil, nil)
		reset()
	})
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	Load()

	assert.Equal(t, "default", Get("missing", "default"))
	assert.Equal(t, filepath.Join(dir, "config", "docview"), Get("config_dir", ""))
	assert.Equal(t, filepath.Join(dir, "state", "docview", "sync.db"), Get("sync_db_path", ""))
	assert.Equal(t, 5, GetInt("fwdsearch_steps", 0))
	assert.Equal(t, 10, GetInt("smooth_scroll_slowdown", 0))
	assert.Equal(t, 400*time.Millisecond, GetMillis("fwdsearch_timeout_ms", 0))
	assert.Equal(t, "launch", Get("external_open", ""))
	assert.False(t, GetBool("logging_enabled", true))
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
fwdsearch_steps = 8
pan_threshold = 4
external_open = "clipboard"
logging_enabled = true
`), FileModeFile))

	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)
	t.Setenv(EnvPrefix+"PAN_THRESHOLD", "6")
	Load()

	assert.Equal(t, 8, GetInt("fwdsearch_steps", 0))
	assert.Equal(t, 6, GetInt("pan_threshold", 0), "environment wins over file")
	assert.Equal(t, "clipboard", Get("external_open", ""))
	assert.True(t, GetBool("logging_enabled", false))
	assert.Equal(t, "", Get("config_path", ""))
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPrefix+"FWDSEARCH_STEPS", "zero")
	t.Setenv(EnvPrefix+"CLICK_THRESHOLD", "-3")
	t.Setenv(EnvPrefix+"EXTERNAL_OPEN", "teleport")
	t.Setenv(EnvPrefix+"DEBUG", "YES")
	Load()

	assert.Equal(t, 5, GetInt("fwdsearch_steps", 0))
	assert.Equal(t, 1, GetInt("click_threshold", 0))
	assert.Equal(t, "launch", Get("external_open", ""))
	assert.Equal(t, "true", Get("debug", ""))
}

func TestValidators(t *testing.T) {
	colors.SetOutput(io.Discard, io.Discard)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	v := NonNegativeIntValidator()
	got, err := v("k", " 0 ", "3")
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	got, _ = PositiveIntValidator()("k", "0", "3")
	assert.Equal(t, "3", got)

	got, _ = EnumValidator(map[string]bool{"a": true})("k", "A", "b")
	assert.Equal(t, "a", got)

	got, _ = BoolValidator()("k", "off", "true")
	assert.Equal(t, "false", got)
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterValidator("debug", BoolValidator())
	})
}
