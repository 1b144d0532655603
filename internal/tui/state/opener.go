package state

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener hands an external locator (URL or file path) to the desktop.
type Opener interface {
	Open(locator string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(locator string) error

func (f OpenerFunc) Open(locator string) error { return f(locator) }

// NewOpener returns the opener for the external_open setting:
// "clipboard" copies the locator, anything else launches it.
func NewOpener(kind string) Opener {
	if kind == "clipboard" {
		return ClipboardOpener{}
	}
	return LaunchOpener{}
}

// LaunchOpener starts the platform's default handler for the locator.
type LaunchOpener struct {
	// start runs cmd; nil means cmd.Start.
	start func(cmd *exec.Cmd) error
}

func (o LaunchOpener) Open(locator string) error {
	cmd, err := launchCommand(runtime.GOOS, locator)
	if err != nil {
		return err
	}
	start := o.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("launch %s: %w", locator, err)
	}
	return nil
}

func launchCommand(goos, locator string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", locator), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", locator), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", locator), nil
	}
	return nil, fmt.Errorf("no launcher for %s", goos)
}

// ClipboardOpener copies the locator to the clipboard instead of opening it.
type ClipboardOpener struct{}

func (ClipboardOpener) Open(locator string) error {
	if err := clipboard.WriteAll(locator); err != nil {
		return fmt.Errorf("copy %s: %w", locator, err)
	}
	return nil
}
