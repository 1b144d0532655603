package state

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpener(t *testing.T) {
	assert.IsType(t, ClipboardOpener{}, NewOpener("clipboard"))
	assert.IsType(t, LaunchOpener{}, NewOpener("launch"))
	assert.IsType(t, LaunchOpener{}, NewOpener(""))
}

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "https://example.com"}},
		{"linux", []string{"xdg-open", "https://example.com"}},
		{"windows", []string{"cmd", "/c", "start", "", "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := launchCommand(tt.goos, "https://example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}

	_, err := launchCommand("plan9", "x")
	assert.Error(t, err)
}

func TestLaunchOpenerWrapsStartFailure(t *testing.T) {
	var started *exec.Cmd
	o := LaunchOpener{start: func(cmd *exec.Cmd) error {
		started = cmd
		return errors.New("boom")
	}}

	err := o.Open("/tmp/notes.txt")

	if started == nil {
		// No launcher on this platform.
		require.Error(t, err)
		return
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "/tmp/notes.txt", started.Args[len(started.Args)-1])
}
