package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	Version, Commit = "development", "unknown"
	assert.Equal(t, "development", String())

	Version, Commit = "0.3.0", "abc1234"
	assert.Equal(t, "0.3.0+abc1234", String())
}
