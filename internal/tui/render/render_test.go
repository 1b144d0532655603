package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCropsAndPads(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, "llo w", Line(styles, "hello world", 2, 5, nil))
	assert.Equal(t, "ab   ", Line(styles, "ab", 0, 5, nil))
	assert.Equal(t, "", Line(styles, "ab", 0, 0, nil))
	assert.Equal(t, "   ", Line(styles, "ab", 4, 3, nil))
}

func TestLineKeepsTextUnderSpans(t *testing.T) {
	styles := DefaultStyles()
	spans := []Span{
		{Start: 0, End: 5, Kind: SpanLink},
		{Start: 3, End: 8, Kind: SpanMarker},
		{Start: 20, End: 30, Kind: SpanSelection},
	}

	out := Line(styles, "hello world", 0, 11, spans)
	assert.Contains(t, out, "hel")
	assert.Contains(t, out, "lo wo")
	assert.Contains(t, out, "rld")
}

func TestPageSeparator(t *testing.T) {
	styles := DefaultStyles()

	out := PageSeparator(styles, 3, "A-1", 30)
	assert.Contains(t, out, "page 3 (A-1)")

	out = PageSeparator(styles, 2, "2", 20)
	assert.Contains(t, out, "page 2")
	assert.NotContains(t, out, "(2)")

	out = PageSeparator(styles, 12, "", 4)
	assert.Equal(t, 4, len([]rune(out)))
}

func TestTocEntry(t *testing.T) {
	out := TocEntry("Chapter 1", 1, 20, false, true)
	assert.True(t, strings.HasPrefix(out, "  • Chapter 1"))
	assert.Len(t, []rune(out), 20)

	out = TocEntry("A very long chapter title", 0, 10, true, true)
	assert.Len(t, []rune(out), 10)
}

func TestBlank(t *testing.T) {
	out := Blank(4, 3, false)
	assert.Len(t, strings.Split(out, "\n"), 3)
	assert.Equal(t, "", Blank(4, 0, true))
}

func TestTabBarStopsAtWidth(t *testing.T) {
	tabs := []TabState{{Title: "one"}, {Title: "two", Active: true}, {Title: "three"}}

	out := TabBar(tabs, 0)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "[two]")
	assert.Contains(t, out, "three")

	out = TabBar(tabs, 12)
	assert.Contains(t, out, "one")
	assert.NotContains(t, out, "three")
}

func TestStatus(t *testing.T) {
	out := Status(StatusState{Page: 1, PageCount: 3, Label: "i", Mode: "presenting"})
	assert.Contains(t, out, "1/3 (i)")
	assert.Contains(t, out, "presenting")
	assert.Contains(t, out, "q: quit")

	out = Status(StatusState{Page: 2, PageCount: 3, Message: "not found", MessageKind: "warning"})
	assert.Contains(t, out, "not found")
	assert.NotContains(t, out, "q: quit")

	assert.Equal(t, "goto: sec", Status(StatusState{Prompt: "goto: sec"}))
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("\033[0m"))
}
