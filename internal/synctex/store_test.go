package synctex

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.Add(context.Background(),
		Record{File: "/src/guide/main.tex", Line: 10, Page: 1, Rect: image.Rect(0, 2, 20, 3)},
		Record{File: "/src/guide/main.tex", Line: 10, Page: 1, Rect: image.Rect(0, 3, 12, 4)},
		Record{File: "/src/guide/main.tex", Line: 20, Page: 2, Rect: image.Rect(4, 0, 30, 1)},
		Record{File: "/src/guide/main.tex", Line: 20, Page: 3, Rect: image.Rect(0, 0, 5, 1)},
		Record{File: "/src/guide/appendix.tex", Line: 3, Page: 3, Rect: image.Rect(0, 5, 10, 6)},
	))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestForwardExactLine(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	page, rects, err := s.Forward(context.Background(), "/src/guide/main.tex", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 2, 20, 3), image.Rect(0, 3, 12, 4)}, rects)
}

func TestForwardNearestLineFirstPage(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	page, rects, err := s.Forward(context.Background(), "/src/guide/main.tex", 18)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, []image.Rectangle{image.Rect(4, 0, 30, 1)}, rects)

	// ties go to the earlier line
	page, _, err = s.Forward(context.Background(), "/src/guide/main.tex", 15)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}

func TestForwardMatchesBaseName(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	page, _, err := s.Forward(context.Background(), "other/checkout/appendix.tex", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	_, _, err = s.Forward(context.Background(), "missing.tex", 1)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestInverse(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	rec, err := s.Inverse(context.Background(), 3, image.Pt(2, 5))
	require.NoError(t, err)
	assert.Equal(t, "/src/guide/appendix.tex", rec.File)
	assert.Equal(t, 3, rec.Line)

	rec, err = s.Inverse(context.Background(), 3, image.Pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "/src/guide/main.tex", rec.File)
	assert.Equal(t, 20, rec.Line)

	_, err = s.Inverse(context.Background(), 9, image.Pt(0, 0))
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestAddValidatesRecords(t *testing.T) {
	s := newTestStore(t)
	err := s.Add(context.Background(), Record{File: "a.tex", Line: 1, Page: 1}, Record{File: "", Line: 1, Page: 1})
	require.Error(t, err)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	require.NoError(t, s.Clear(context.Background(), "/src/guide/appendix.tex"))
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/guide/main.tex"}, files)

	require.NoError(t, s.Clear(context.Background(), ""))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestImport(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(t.TempDir(), "guide.sync.tsv")
	data := "# file\tline\tcol\tpage\tx\ty\tw\th\n" +
		"main.tex\t5\t0\t1\t0\t0\t10\t1\n" +
		"\n" +
		"main.tex\t6\t2\t1\t0\t1\t8\t1\n" +
		"main.tex\tsix\t0\t1\t0\t0\t1\t1\n" +
		"main.tex\t7\t0\t1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	stats, err := s.Import(context.Background(), path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 2, stats.ImportedRows)
	assert.Equal(t, 2, stats.SkippedRows)
	require.Len(t, stats.Warnings, 2)
	assert.Contains(t, stats.Warnings[0], "line 5")

	// replace drops the earlier rows of the same file
	stats, err = s.Import(context.Background(), path, true)
	require.NoError(t, err)
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.ImportedRows, n)

	page, rects, err := s.Forward(context.Background(), "main.tex", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 1, 8, 2)}, rects)
}

func TestImportMissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Import(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"), false)
	require.Error(t, err)
}
