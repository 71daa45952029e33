package tree

import (
	"GoEngage/common/errorx"
	"testing"

	"github.com/stretchr/testify/require"
)

type likedPost struct {
	id, parent, likes int64
}

func (p likedPost) GetId() int64       { return p.id }
func (p likedPost) GetParentId() int64 { return p.parent }

func rootIds(roots []*Node[likedPost]) []int64 {
	ids := make([]int64, len(roots))
	for i, r := range roots {
		ids[i] = r.Value.id
	}
	return ids
}

func TestOrderRoots(t *testing.T) {
	roots := Assemble([]likedPost{
		{id: 1, likes: 2},
		{id: 2, parent: 1, likes: 50},
		{id: 3, likes: 7},
		{id: 4, likes: 2},
		{id: 5, likes: 0},
	})
	likes := func(p likedPost) int64 { return p.likes }

	got, err := OrderRoots(roots, "", likes)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3, 4, 5}, rootIds(got))

	got, err = OrderRoots(roots, OrderNewest, likes)
	require.NoError(t, err)
	require.Equal(t, []int64{5, 4, 3, 1}, rootIds(got))
	// 原切片不变
	require.Equal(t, []int64{1, 3, 4, 5}, rootIds(roots))

	got, err = OrderRoots(roots, OrderHot, likes)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1, 4, 5}, rootIds(got))
	require.Len(t, got[1].Replies, 1)

	_, err = OrderRoots(roots, "random", likes)
	require.True(t, errorx.Is(err, errorx.Validation))
}
