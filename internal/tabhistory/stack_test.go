package tabhistory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovePromotesNextEntry(t *testing.T) {
	s := New[string]()
	s.Push("A")
	s.Push("B")
	s.Push("C")

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "C", cur)

	require.True(t, s.Remove("C"))
	cur, _ = s.Current()
	assert.Equal(t, "B", cur)

	require.True(t, s.Remove("B"))
	cur, _ = s.Current()
	assert.Equal(t, "A", cur)

	require.True(t, s.Remove("A"))
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestPushMovesExistingToHead(t *testing.T) {
	s := New[int]()
	for _, tab := range []int{1, 2, 3, 2, 1} {
		s.Push(tab)
	}
	assert.Equal(t, []int{1, 2, 3}, s.Items())
}

func TestPushSameTwiceKeepsOneEntry(t *testing.T) {
	s := New[int]()
	s.Push(7)
	s.Push(7)
	assert.Equal(t, 1, s.Len())
}

func TestRemoveFromMiddleKeepsHead(t *testing.T) {
	s := New[string]()
	s.Push("A")
	s.Push("B")
	s.Push("C")

	require.True(t, s.Remove("B"))
	assert.False(t, s.Remove("B"))
	assert.Equal(t, []string{"C", "A"}, s.Items())
}

func TestItemsIsACopy(t *testing.T) {
	s := New[string]()
	s.Push("A")
	items := s.Items()
	items[0] = "Z"

	cur, _ := s.Current()
	assert.Equal(t, "A", cur)
}
