// Package config provides configuration loading for docview.
//
// Values are resolved in order: built-in defaults, DOCVIEW_* environment
// variables, the TOML config file, and the environment again so that it
// always wins over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/docview/internal/colors"
	"github.com/pelletier/go-toml/v2"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML configuration files.
	FileExtTOML = ".toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DOCVIEW_"
)

var (
	config    map[string]string
	configMap map[string]string
	mu        sync.RWMutex
)

func init() {
	initValidators()
}

// Load initializes configuration.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	config = make(map[string]string)
	configMap = make(map[string]string)

	setDefaults()
	loadFromEnv()
	loadFromFile()
	loadFromEnv()
	validate()
	computeDirs()
}

// reset clears loaded values. Used by tests.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	config = nil
	configMap = nil
}

// setDefaults populates config with default values.
func setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	setDefault("config_dir", filepath.Join(xdgConfigHome, "docview"))
	setDefault("state_dir", filepath.Join(xdgStateHome, "docview"))

	// Pointer and gesture thresholds, in canvas units.
	setDefault("click_threshold", "1")
	setDefault("pan_threshold", "2")

	// Middle-click smooth scrolling.
	setDefault("smooth_scroll_slowdown", "10")
	setDefault("smooth_scroll_interval_ms", "20")

	// Forward search marker decay.
	setDefault("fwdsearch_steps", "5")
	setDefault("fwdsearch_decrement", "1")
	setDefault("fwdsearch_interval_ms", "100")
	setDefault("fwdsearch_timeout_ms", "400")

	setDefault("repaint_delay_ms", "0")
	setDefault("external_open", "launch")
	setDefault("remember_state", "true")

	setDefault("logging_enabled", "false")
	setDefault("logging_level", "info")
	setDefault("logging_max_files", "10")
	setDefault("debug", "false")
}

func setDefault(key, value string) {
	config[key] = value
	configMap[key] = value
}

// loadFromFile reads configuration from DOCVIEW_CONFIG_PATH or {config_dir}/config.toml.
func loadFromFile() {
	configPath := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if configPath == "" {
		if configDir, ok := config["config_dir"]; ok {
			configPath = filepath.Join(configDir, "config"+FileExtTOML)
			if _, err := os.Stat(configPath); err != nil {
				configPath = ""
			}
		}
	}
	if configPath == "" {
		return
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", configPath, err))
		return
	}
	if strings.ToLower(filepath.Ext(configPath)) != FileExtTOML {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", configPath, err))
		return
	}

	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		config[key] = converted
	}
}

// coerceConfigValue converts a decoded TOML value to its string representation.
func coerceConfigValue(value interface{}) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

// loadFromEnv applies environment variable overrides.
func loadFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], EnvPrefix))
		if key == "config_path" {
			continue
		}
		config[key] = parts[1]
	}
}

// validate checks and normalizes configuration values using registered validators.
func validate() {
	for key, value := range config {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		defaultValue := configMap[key]
		normalizedValue, err := validator(key, value, defaultValue)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, defaultValue))
			config[key] = defaultValue
		} else {
			config[key] = normalizedValue
		}
	}
}

// computeDirs derives paths that depend on other keys.
func computeDirs() {
	stateDir := config["state_dir"]
	if stateDir == "" {
		return
	}
	if _, set := config["sync_db_path"]; !set {
		config["sync_db_path"] = filepath.Join(stateDir, "sync.db")
	}
}

// Get returns a configuration value or default.
func Get(key, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or default.
func GetInt(key string, defaultValue int) int {
	mu.RLock()
	defer mu.RUnlock()
	val, ok := config[key]
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or default.
func GetBool(key string, defaultValue bool) bool {
	mu.RLock()
	defer mu.RUnlock()
	val, ok := config[key]
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// GetMillis returns an integer millisecond key as a duration, or default.
func GetMillis(key string, defaultValue time.Duration) time.Duration {
	n := GetInt(key, -1)
	if n < 0 {
		return defaultValue
	}
	return time.Duration(n) * time.Millisecond
}
