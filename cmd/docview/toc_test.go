package main

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/docview/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTocCmd(t *testing.T) {
	out, err := execute(t, NewTocCmd(document.Load), guidePath)

	require.NoError(t, err)
	assert.Equal(t, `Front Matter  -> page 1
Part One
  Chapter 1: Basics  -> page 2
Appendix  -> page 3
`, out)
}

func TestTocCmdWithoutToc(t *testing.T) {
	load := func(string) (*document.Document, error) {
		return document.Parse([]byte("[[pages]]\ntext = \"only\"\n"), t.TempDir())
	}

	out, err := execute(t, NewTocCmd(load), "x.toml")

	require.NoError(t, err)
	assert.Equal(t, "no table of contents\n", out)
}

func TestTocCmdLoadError(t *testing.T) {
	load := func(string) (*document.Document, error) { return nil, errors.New("bad manifest") }

	_, err := execute(t, NewTocCmd(load), "x.toml")
	assert.ErrorContains(t, err, "bad manifest")
}
