package gesture

import (
	"image"
	"testing"

	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanStartLeavesMachineIdle(t *testing.T) {
	m := interaction.New(nil)
	tr := New(m, 5, nil)

	tr.PanStart(image.Pt(100, 50), 0)
	assert.True(t, tr.Panning())
	assert.Equal(t, interaction.Idle, m.Mode())
}

func TestPanBelowThresholdIsJitter(t *testing.T) {
	m := interaction.New(nil)
	tr := New(m, 5, nil)
	tr.PanStart(image.Pt(100, 50), 0)

	_, ok := tr.PanUpdate(image.Pt(104, 80))
	assert.False(t, ok)
	assert.Equal(t, interaction.Idle, m.Mode())
}

func TestPanEntersScrollingPastThreshold(t *testing.T) {
	m := interaction.New(nil)
	tr := New(m, 5, nil)
	tr.PanStart(image.Pt(100, 50), 300)

	cmd, ok := tr.PanUpdate(image.Pt(90, 50))
	require.True(t, ok)
	assert.Equal(t, interaction.Scrolling, m.Mode())
	assert.Equal(t, image.Pt(100, 50), m.Origin())
	assert.Equal(t, ScrollCommand{X: 310, DX: 10}, cmd)

	cmd, ok = tr.PanUpdate(image.Pt(85, 50))
	require.True(t, ok)
	assert.Equal(t, ScrollCommand{X: 315, DX: 5}, cmd)

	tr.PanEnd()
	assert.Equal(t, interaction.Idle, m.Mode())
	assert.False(t, tr.Panning())
}

func TestPanDoesNotStealActiveInteraction(t *testing.T) {
	m := interaction.New(nil)
	require.NoError(t, m.Begin(interaction.Selecting, image.Pt(1, 1)))
	tr := New(m, 2, nil)
	tr.PanStart(image.Pt(0, 0), 0)

	_, ok := tr.PanUpdate(image.Pt(20, 0))
	assert.False(t, ok)

	tr.PanEnd()
	assert.Equal(t, interaction.Selecting, m.Mode())
}

func TestSubThresholdPanLeavesDragRunning(t *testing.T) {
	m := interaction.New(nil)
	require.NoError(t, m.Begin(interaction.Dragging, image.Pt(10, 10)))
	tr := New(m, 5, nil)
	tr.PanStart(image.Pt(10, 10), 0)

	_, ok := tr.PanUpdate(image.Pt(12, 10))
	assert.False(t, ok)

	tr.PanEnd()
	assert.Equal(t, interaction.Dragging, m.Mode())
	assert.False(t, tr.Panning())
}

func TestPanUpdateWithoutStart(t *testing.T) {
	tr := New(interaction.New(nil), 0, nil)
	_, ok := tr.PanUpdate(image.Pt(50, 0))
	assert.False(t, ok)
}

func TestZoomUpdateIsIncremental(t *testing.T) {
	tr := New(interaction.New(nil), 0, nil)
	tr.ZoomStart(100)

	assert.InDelta(t, 1.5, tr.ZoomUpdate(150), 1e-9)
	assert.InDelta(t, 2.0, tr.ZoomUpdate(300), 1e-9)
	assert.InDelta(t, 0.5, tr.ZoomUpdate(150), 1e-9)
}

func TestZoomUpdateWithoutStart(t *testing.T) {
	tr := New(interaction.New(nil), 0, nil)
	assert.Equal(t, 1.0, tr.ZoomUpdate(120))
	assert.InDelta(t, 0.5, tr.ZoomUpdate(60), 1e-9)
}
