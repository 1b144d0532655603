package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

const guidePath = "../../internal/document/testdata/guide.toml"

// execute runs c with args and returns everything it printed.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(args)
	c.SilenceUsage = true
	err := c.Execute()
	return buf.String(), err
}
