package state

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
)

// forwardSearchMsg marks a location once the program is running.
type forwardSearchMsg struct {
	Page  int
	Rects []image.Rectangle
}

// waitForCompletion delivers the next background completion posted to ch.
func waitForCompletion(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
