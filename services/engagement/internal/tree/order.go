package tree

import (
	"GoEngage/common/errorx"
	"GoEngage/common/infra/heap"
	"slices"
)

const (
	OrderOldest = "oldest"
	OrderNewest = "newest"
	OrderHot    = "hot"
)

// OrderRoots 只调整根节点顺序，回复保持时间正序。空字符串按oldest处理
func OrderRoots[T Item](roots []*Node[T], order string, likes func(T) int64) ([]*Node[T], error) {
	switch order {
	case "", OrderOldest:
		return roots, nil
	case OrderNewest:
		res := slices.Clone(roots)
		slices.Reverse(res)
		return res, nil
	case OrderHot:
		type ranked struct {
			node  *Node[T]
			pos   int
			likes int64
		}
		items := make([]ranked, len(roots))
		for i, r := range roots {
			items[i] = ranked{node: r, pos: i, likes: likes(r.Value)}
		}
		// 点赞多的在前，相同时保持原顺序
		sorted := heap.Sorted(items, func(a, b ranked) bool {
			if a.likes != b.likes {
				return a.likes > b.likes
			}
			return a.pos < b.pos
		})
		res := make([]*Node[T], len(sorted))
		for i, item := range sorted {
			res[i] = item.node
		}
		return res, nil
	}
	return nil, errorx.NewValidation("unknown order %q", order)
}

func ValidOrder(order string) bool {
	switch order {
	case "", OrderOldest, OrderNewest, OrderHot:
		return true
	}
	return false
}
