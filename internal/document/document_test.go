package document

import (
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/search"
	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ ports.Document = (*Document)(nil)

func loadGuide(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "guide.toml"))
	require.NoError(t, err)
	return doc
}

func TestLoadGuide(t *testing.T) {
	doc := loadGuide(t)

	assert.Equal(t, "Field Guide", doc.Title)
	assert.Equal(t, 3, doc.PageCount())
	assert.True(t, filepath.IsAbs(doc.Path()))
	assert.Equal(t, filepath.Dir(doc.Path()), doc.Dir())

	page, ok := doc.Page(2)
	require.True(t, ok)
	assert.Equal(t, "2", page.Label)
	assert.Equal(t, []string{"Chapter 1: Basics", "Every field has a margin."}, page.Lines)

	_, ok = doc.Page(4)
	assert.False(t, ok)
}

func TestPageLabels(t *testing.T) {
	doc := loadGuide(t)
	for label, want := range map[string]int{"i": 1, "2": 2, "A-1": 3} {
		got, ok := doc.PageByLabel(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}
	_, ok := doc.PageByLabel("1")
	assert.False(t, ok)
}

func TestTocTree(t *testing.T) {
	root := loadGuide(t).TocRoot()
	require.Len(t, root.Children, 3)

	part := root.Children[1]
	assert.Equal(t, "Part One", part.Name)
	assert.Nil(t, part.Dest)
	require.Len(t, part.Children, 1)
	assert.Equal(t, &toc.Destination{Kind: toc.DestScrollTo, Page: 2}, part.Children[0].Dest)
}

func TestNamedDests(t *testing.T) {
	doc := loadGuide(t)

	dest, ok := doc.NamedDest("sec:basics")
	require.True(t, ok)
	assert.Equal(t, toc.Destination{Kind: toc.DestScrollTo, Page: 2, Point: image.Pt(0, 1)}, *dest)

	dest, ok = doc.NamedDest("see-appendix")
	require.True(t, ok)
	assert.Equal(t, toc.DestNamed, dest.Kind)
	assert.Equal(t, "Appendix", dest.Value)
}

func TestLinkAt(t *testing.T) {
	doc := loadGuide(t)

	dest, ok := doc.LinkAt(1, image.Pt(6, 1))
	require.True(t, ok)
	assert.Equal(t, 2, dest.Page)

	dest, ok = doc.LinkAt(1, image.Pt(0, 0))
	require.True(t, ok)
	assert.Equal(t, "https://example.com/guide", dest.Value)

	_, ok = doc.LinkAt(1, image.Pt(20, 1))
	assert.False(t, ok)
	_, ok = doc.LinkAt(9, image.Pt(0, 0))
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	doc := loadGuide(t)

	hits, err := doc.Search(context.Background(), "FIELD")
	require.NoError(t, err)
	assert.Equal(t, []Hit{
		{Page: 1, Rect: image.Rect(0, 0, 5, 1)},
		{Page: 2, Rect: image.Rect(6, 1, 11, 2)},
	}, hits)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = doc.Search(ctx, "field")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearchRegex(t *testing.T) {
	doc := loadGuide(t)

	hits, err := doc.Search(context.Background(), `re:chapter \d`)
	require.NoError(t, err)
	assert.Equal(t, []Hit{
		{Page: 1, Rect: image.Rect(4, 1, 13, 2)},
		{Page: 2, Rect: image.Rect(0, 0, 9, 1)},
	}, hits)

	hits, err = doc.Search(context.Background(), "re:[")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchWithProvider(t *testing.T) {
	doc := loadGuide(t)
	p := new(search.MockProvider)
	p.On("FindAll", "Notes live in notes.txt", "notes").Return([]search.Match{{Start: 14, End: 19}})
	p.On("FindAll", mock.Anything, "notes").Return(nil)

	hits, err := doc.SearchWith(context.Background(), p, "notes")
	require.NoError(t, err)
	assert.Equal(t, []Hit{{Page: 3, Rect: image.Rect(14, 1, 19, 2)}}, hits)
	p.AssertNumberOfCalls(t, "FindAll", 6)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no pages", data: `title = "x"`},
		{name: "bad toml", data: `[[pages]`},
		{name: "unknown kind", data: "[[pages]]\ntext = \"a\"\n[dests]\nx = { kind = \"teleport\" }"},
		{name: "page out of range", data: "[[pages]]\ntext = \"a\"\n[dests]\nx = { page = 5 }"},
		{name: "url without value", data: "[[pages]]\ntext = \"a\"\n[[toc]]\nname = \"x\"\nkind = \"url\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "")
			require.Error(t, err)
		})
	}
}

func TestParseWithoutToc(t *testing.T) {
	doc, err := Parse([]byte("[[pages]]\ntext = \"only\"\n"), t.TempDir())
	require.NoError(t, err)

	assert.Nil(t, doc.TocRoot())
	assert.Equal(t, 1, doc.PageCount())
}
