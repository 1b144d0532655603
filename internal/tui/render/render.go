// Package render draws the document canvas, TOC panel and status lines.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/docview/internal/colors"
)

const (
	tocIndentSize = 2
	tocBullet     = "•"
	separatorRune = "─"
)

// SpanKind is what a highlighted span of a line shows.
type SpanKind int

const (
	SpanLink SpanKind = iota
	SpanFindHit
	SpanSelection
	SpanMarker
)

// Span highlights the runes [Start, End) of a line. Later kinds win where spans overlap.
type Span struct {
	Start, End int
	Kind       SpanKind
}

// Styles are the lipgloss styles used on the canvas.
type Styles struct {
	Link      lipgloss.Style
	FindHit   lipgloss.Style
	Selection lipgloss.Style
	Marker    lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns the standard canvas styles.
func DefaultStyles() Styles {
	return Styles{
		Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue))),
		FindHit:   lipgloss.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("0")),
		Selection: lipgloss.NewStyle().Reverse(true),
		Marker:    lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (s Styles) forKind(k SpanKind) lipgloss.Style {
	switch k {
	case SpanFindHit:
		return s.FindHit
	case SpanSelection:
		return s.Selection
	case SpanMarker:
		return s.Marker
	default:
		return s.Link
	}
}

type segment struct {
	text  string
	style *lipgloss.Style
}

// Line renders the visible window [xOffset, xOffset+width) of text with spans applied.
// The result is padded to width so highlights past the end of the text show.
func Line(styles Styles, text string, xOffset, width int, spans []Span) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if pad := xOffset + width - len(runes); pad > 0 {
		runes = append(runes, []rune(strings.Repeat(" ", pad))...)
	}
	runes = runes[xOffset : xOffset+width]

	// kinds[i] is the span kind covering visible rune i, -1 for none.
	kinds := make([]SpanKind, width)
	for i := range kinds {
		kinds[i] = -1
	}
	sorted := append([]Span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Kind < sorted[j].Kind })
	for _, sp := range sorted {
		for x := max(sp.Start-xOffset, 0); x < min(sp.End-xOffset, width); x++ {
			kinds[x] = sp.Kind
		}
	}

	var segments []segment
	start := 0
	for i := 1; i <= width; i++ {
		if i < width && kinds[i] == kinds[start] {
			continue
		}
		seg := segment{text: string(runes[start:i])}
		if kinds[start] >= 0 {
			st := styles.forKind(kinds[start])
			seg.style = &st
		}
		segments = append(segments, seg)
		start = i
	}
	return renderSegments(segments)
}

func renderSegments(segments []segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.style == nil {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(seg.style.Render(seg.text))
	}
	return b.String()
}

// PageSeparator renders the rule shown above a page.
func PageSeparator(styles Styles, page int, label string, width int) string {
	title := fmt.Sprintf(" page %d ", page)
	if label != "" && label != fmt.Sprint(page) {
		title = fmt.Sprintf(" page %d (%s) ", page, label)
	}
	title = truncate(title, width)
	rest := max(width-utf8.RuneCountInString(title), 0)
	left := min(2, rest)
	line := strings.Repeat(separatorRune, left) + title + strings.Repeat(separatorRune, rest-left)
	return styles.Separator.Render(line)
}

// TocEntry renders one TOC panel row.
func TocEntry(name string, depth, width int, selected, linked bool) string {
	label := strings.Repeat(" ", tocIndentSize*depth) + tocBullet + " " + name
	label = pad(truncate(label, width), width)

	style := lipgloss.NewStyle()
	switch {
	case selected:
		style = style.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	case !linked:
		style = style.Foreground(lipgloss.Color("241"))
	}
	return style.Render(label)
}

// Blank renders a full black or white screen.
func Blank(width, height int, white bool) string {
	bg := lipgloss.Color("0")
	if white {
		bg = lipgloss.Color("15")
	}
	row := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", max(width, 0)))
	rows := make([]string, max(height, 0))
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// TabState is one entry of the tab bar.
type TabState struct {
	Title  string
	Active bool
}

// TabBar renders the tab strip.
func TabBar(tabs []TabState, width int) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	parts := make([]string, 0, len(tabs))
	used := 0
	for _, t := range tabs {
		title := " " + t.Title + " "
		n := utf8.RuneCountInString(title) + 1
		if width > 0 && used+n > width {
			break
		}
		used += n
		if t.Active {
			parts = append(parts, active.Render("["+strings.TrimSpace(title)+"]"))
		} else {
			parts = append(parts, inactive.Render(title))
		}
	}
	return strings.Join(parts, " ")
}

// StatusState defines the inputs of the status line.
type StatusState struct {
	Page      int
	PageCount int
	Label     string
	Mode      string
	Message   string
	// MessageKind is one of "error", "warning", "info" or "ok".
	MessageKind string
	Prompt      string
	Width       int
}

// Status renders the bottom status line.
func Status(state StatusState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if state.Prompt != "" {
		return state.Prompt
	}

	pos := fmt.Sprintf("%d/%d", state.Page, state.PageCount)
	if state.Label != "" && state.Label != fmt.Sprint(state.Page) {
		pos = fmt.Sprintf("%s (%s)", pos, state.Label)
	}
	left := pos
	if state.Mode != "" {
		left += "  " + state.Mode
	}

	var right string
	if state.Message != "" {
		right = messageStyle(state.MessageKind).Render(state.Message)
	} else {
		right = helpStyle.Render(strings.Join([]string{
			"j/k: scroll", "n/p: page", "g: goto", "/: find", "t: toc", "F5: present", "q: quit",
		}, "  |  "))
	}
	return left + "  " + right
}

func messageStyle(kind string) lipgloss.Style {
	var code string
	switch kind {
	case "error":
		code = colors.Red
	case "warning":
		code = colors.Yellow
	case "ok":
		code = colors.Green
	default:
		code = colors.Blue
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(code)))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	return string([]rune(value)[:width])
}

func pad(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return value + strings.Repeat(" ", width-n)
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
