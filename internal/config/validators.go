package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/docview/internal/colors"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

// validatorRegistry manages the set of registered validators.
type validatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// registry is the global validator registry.
var registry = &validatorRegistry{
	validators: make(map[string]Validator),
}

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	registry.validators[key] = validator
}

// getValidator returns the validator for a key, or nil if not registered.
func getValidator(key string) Validator {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.validators[key]
}

// PositiveIntValidator returns a validator that ensures a value is a positive integer.
func PositiveIntValidator() Validator {
	return intValidator(1, "a positive integer")
}

// NonNegativeIntValidator returns a validator that accepts zero and positive integers.
func NonNegativeIntValidator() Validator {
	return intValidator(0, "a non-negative integer")
}

func intValidator(min int, what string) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be %s, using default: %s", key, value, what, defaultValue))
			return defaultValue, nil
		}
		return strconv.Itoa(n), nil
	}
}

// EnumValidator returns a validator that ensures a value is one of the allowed enum values.
func EnumValidator(allowed map[string]bool) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		valueLower := strings.ToLower(value)
		if !allowed[valueLower] {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be one of: %s; using default: %s", key, value, allowedValues(allowed), defaultValue))
			return defaultValue, nil
		}
		return valueLower, nil
	}
}

// BoolValidator returns a validator that normalizes and validates boolean values.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			colors.Warning(fmt.Sprintf("invalid boolean value for %s: '%s', must be one of: 1, true, yes, on, 0, false, no, off; using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}

// initValidators registers all configuration validators.
func initValidators() {
	positive := PositiveIntValidator()
	RegisterValidator("smooth_scroll_slowdown", positive)
	RegisterValidator("smooth_scroll_interval_ms", positive)
	RegisterValidator("fwdsearch_steps", positive)
	RegisterValidator("fwdsearch_decrement", positive)
	RegisterValidator("fwdsearch_interval_ms", positive)
	RegisterValidator("logging_max_files", positive)

	nonNegative := NonNegativeIntValidator()
	RegisterValidator("click_threshold", nonNegative)
	RegisterValidator("pan_threshold", nonNegative)
	RegisterValidator("fwdsearch_timeout_ms", nonNegative)
	RegisterValidator("repaint_delay_ms", nonNegative)

	RegisterValidator("external_open", EnumValidator(map[string]bool{"launch": true, "clipboard": true}))
	RegisterValidator("logging_level", EnumValidator(map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}))

	boolValidator := BoolValidator()
	RegisterValidator("logging_enabled", boolValidator)
	RegisterValidator("debug", boolValidator)
	RegisterValidator("remember_state", boolValidator)
}

// normalizeBool converts various boolean representations to "true"/"false".
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}

// allowedValues returns a comma-separated string of allowed values.
func allowedValues(allowed map[string]bool) string {
	values := make([]string, 0, len(allowed))
	for k := range allowed {
		values = append(values, k)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
