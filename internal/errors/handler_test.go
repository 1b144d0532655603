package errors

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOutput records every message per level.
type recordingOutput struct {
	mu       sync.Mutex
	errors   []string
	warnings []string
	infos    []string
	success  []string
}

func (r *recordingOutput) Error(msgs ...string)   { r.add(&r.errors, msgs) }
func (r *recordingOutput) Warning(msgs ...string) { r.add(&r.warnings, msgs) }
func (r *recordingOutput) Info(msgs ...string)    { r.add(&r.infos, msgs) }
func (r *recordingOutput) Success(msgs ...string) { r.add(&r.success, msgs) }

func (r *recordingOutput) add(dst *[]string, msgs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(msgs) > 0 {
		*dst = append(*dst, msgs[0])
	}
}

func TestCLIHandlerForwardsToOutput(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"e"}, out.errors)
	assert.Equal(t, []string{"w"}, out.warnings)
	assert.Equal(t, []string{"i"}, out.infos)
	assert.Equal(t, []string{"s"}, out.success)
}

func TestReportByKind(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	assert.False(t, Report(h, ErrAlreadyActive))
	assert.False(t, Report(h, New(KindInvalidState, "exit presentation", "", nil)))
	assert.True(t, Report(h, New(KindNotFound, "goto named dest", "Intro", nil)))
	assert.True(t, Report(h, New(KindOpenFailed, "open external", "https://example.com", nil)))
	assert.False(t, Report(h, nil))
	assert.False(t, Report(nil, ErrNotFound))

	require.Len(t, out.warnings, 1)
	assert.Contains(t, out.warnings[0], "Intro")
	require.Len(t, out.errors, 1)
	assert.Contains(t, out.errors[0], "open failed")
}

func TestReportFailureIsNeverSilent(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	ReportFailure(h, New(KindNotFound, "goto named dest", "Intro", nil))
	ReportFailure(h, ErrAlreadyActive)
	ReportFailure(h, stderrors.New("read manifest: boom"))
	ReportFailure(h, nil)
	ReportFailure(nil, ErrNotFound)

	require.Len(t, out.warnings, 1)
	assert.Contains(t, out.warnings[0], "Intro")
	assert.Equal(t, []string{"interaction already active", "read manifest: boom"}, out.errors)
}

func TestTUIHandlerKeepsLatest(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(msg Message) { seen = append(seen, msg) })

	_, ok := h.GetLatest()
	assert.False(t, ok)

	Report(h, New(KindNotFound, "goto named dest", "Appendix", nil))
	h.Success("opened")

	latest, ok := h.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "opened", latest.Text)
	assert.Equal(t, MessageTypeSuccess, latest.Type)
	require.Len(t, seen, 2)
	assert.Equal(t, MessageTypeWarning, seen[0].Type)
	assert.Equal(t, "warning", seen[0].Type.String())

	h.Clear()
	assert.Empty(t, h.GetAll())
}

func TestTUIHandlerBoundsHistory(t *testing.T) {
	h := NewTUIHandler(nil)
	for i := 0; i < maxTUIMessages+10; i++ {
		h.Info("tick")
	}
	assert.Len(t, h.GetAll(), maxTUIMessages)
}
