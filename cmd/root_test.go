package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestHelpTextListsCommandsInOrder(t *testing.T) {
	root := &cobra.Command{Use: "docview"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "view <manifest>...", Short: "Open documents"},
		&cobra.Command{Use: "hidden", Short: "Not listed"},
	)

	out := helpText(root)

	assert.Contains(t, out, "USAGE:\n    docview [COMMAND] [OPTIONS]")
	assert.NotContains(t, out, "hidden")
	view := bytes.Index([]byte(out), []byte("view <manifest>..."))
	ver := bytes.Index([]byte(out), []byte("Show version information"))
	assert.Positive(t, view)
	assert.Less(t, view, ver)
}

func TestRootHelpUsesHelpText(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	t.Cleanup(func() { RootCmd.SetOut(nil) })

	RootCmd.HelpFunc()(RootCmd, nil)

	assert.Contains(t, buf.String(), "A terminal document viewer")
	assert.Contains(t, buf.String(), "COMMANDS:")
}
