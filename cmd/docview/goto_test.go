package main

import (
	"testing"

	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGotoCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"named destination", []string{"sec:basics"}, "match: named-dest\ntarget: page 2 (0,1)\n"},
		{"named chain", []string{"see-appendix"}, "match: named-dest\ntarget: page 3 (0,0)\n"},
		{"exact toc entry", []string{"Front Matter"}, "match: exact\ntarget: page 1 (0,0)\n"},
		{"partial toc entry", []string{"chapter 1"}, "match: partial\ntarget: page 2 (0,0)\n"},
		{"page label", []string{"A-1"}, "match: page-label\ntarget: page 3 (0,0)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{guidePath}, tt.args...)
			out, err := execute(t, NewGotoCmd(document.Load), args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGotoCmdNotFound(t *testing.T) {
	_, err := execute(t, NewGotoCmd(document.Load), guidePath, "nowhere")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
