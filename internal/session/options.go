package session

import (
	"time"

	"github.com/cristianoliveira/docview/internal/config"
	"github.com/cristianoliveira/docview/internal/fwdsearch"
	"github.com/cristianoliveira/docview/internal/gesture"
	"github.com/cristianoliveira/docview/internal/interaction"
)

// WheelDelta is the wheel rotation that scrolls by one line.
const WheelDelta = 120

// Options tunes pointer handling and timers.
type Options struct {
	// ClickThreshold is the largest pointer travel a press/release pair may
	// have and still count as a click.
	ClickThreshold int
	PanThreshold   int

	SmoothScrollSlowdown int
	SmoothScrollInterval time.Duration

	FwdSearchSteps     int
	FwdSearchDecrement int
	FwdSearchInterval  time.Duration
	// FwdSearchTimeout is how long the marker stays at full strength before decaying.
	FwdSearchTimeout time.Duration

	RepaintDelay time.Duration
}

// DefaultOptions returns the built-in tuning.
func DefaultOptions() Options {
	return Options{
		ClickThreshold:       1,
		PanThreshold:         gesture.DefaultThreshold,
		SmoothScrollSlowdown: interaction.DefaultSlowdown,
		SmoothScrollInterval: 20 * time.Millisecond,
		FwdSearchSteps:       fwdsearch.DefaultSteps,
		FwdSearchDecrement:   fwdsearch.DefaultDecrement,
		FwdSearchInterval:    100 * time.Millisecond,
		FwdSearchTimeout:     400 * time.Millisecond,
	}
}

// OptionsFromConfig reads Options from the loaded configuration.
func OptionsFromConfig() Options {
	d := DefaultOptions()
	return Options{
		ClickThreshold:       config.GetInt("click_threshold", d.ClickThreshold),
		PanThreshold:         config.GetInt("pan_threshold", d.PanThreshold),
		SmoothScrollSlowdown: config.GetInt("smooth_scroll_slowdown", d.SmoothScrollSlowdown),
		SmoothScrollInterval: config.GetMillis("smooth_scroll_interval_ms", d.SmoothScrollInterval),
		FwdSearchSteps:       config.GetInt("fwdsearch_steps", d.FwdSearchSteps),
		FwdSearchDecrement:   config.GetInt("fwdsearch_decrement", d.FwdSearchDecrement),
		FwdSearchInterval:    config.GetMillis("fwdsearch_interval_ms", d.FwdSearchInterval),
		FwdSearchTimeout:     config.GetMillis("fwdsearch_timeout_ms", d.FwdSearchTimeout),
		RepaintDelay:         config.GetMillis("repaint_delay_ms", d.RepaintDelay),
	}
}
