package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestSorted(t *testing.T) {
	require.Equal(t, []int{1, 2, 3, 5, 8}, Sorted([]int{5, 3, 8, 1, 2}, intLess))
	require.Empty(t, Sorted([]int{}, intLess))
}

func TestPeekEmpty(t *testing.T) {
	h := NewHeap(intLess)
	_, ok := h.Peek()
	require.False(t, ok)
}
