// Package tree 把按时间排好序的扁平评论组装成根评论+回复的两层结构。
package tree

import "slices"

// Item 可以参与组装的记录
type Item interface {
	GetId() int64
	GetParentId() int64
}

type Node[T Item] struct {
	Value   T
	Replies []*Node[T]
}

// Assemble O(n)两遍扫描，输入需按createdAt升序且id不重复。
// 父节点不在输入中的回复(孤儿)提升为根节点，不会丢弃；根节点与回复均保持输入顺序。
func Assemble[T Item](items []T) []*Node[T] {
	// arena保存全部节点，index记录id到arena下标，children记录每个父节点的子节点下标
	arena := make([]Node[T], len(items))
	index := make(map[int64]int, len(items))
	for i, item := range items {
		arena[i].Value = item
		if _, ok := index[item.GetId()]; !ok {
			index[item.GetId()] = i
		}
	}

	parentOf := make([]int, len(items))
	children := make(map[int][]int)
	roots := make([]int, 0)
	for i, item := range items {
		parent, ok := index[item.GetParentId()]
		if item.GetParentId() == 0 || !ok || parent == i {
			parentOf[i] = -1
			roots = append(roots, i)
			continue
		}
		parentOf[i] = parent
		children[parent] = append(children[parent], i)
	}

	// parent_id成环的节点从任何根都不可达，提升为根，保证每条记录恰好出现一次
	reached := make([]bool, len(items))
	for _, r := range roots {
		mark(r, children, reached)
	}
	promoted := false
	for i := range items {
		if reached[i] {
			continue
		}
		p := parentOf[i]
		children[p] = slices.DeleteFunc(children[p], func(c int) bool { return c == i })
		parentOf[i] = -1
		roots = append(roots, i)
		mark(i, children, reached)
		promoted = true
	}
	if promoted {
		slices.Sort(roots)
	}

	for i := range arena {
		list := children[i]
		arena[i].Replies = make([]*Node[T], len(list))
		for j, child := range list {
			arena[i].Replies[j] = &arena[child]
		}
	}

	res := make([]*Node[T], len(roots))
	for i, r := range roots {
		res[i] = &arena[r]
	}
	return res
}

func mark(i int, children map[int][]int, reached []bool) {
	stack := []int{i}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[n] {
			continue
		}
		reached[n] = true
		stack = append(stack, children[n]...)
	}
}

// Count 树中节点总数
func Count[T Item](roots []*Node[T]) int {
	n := 0
	for _, r := range roots {
		n += 1 + Count(r.Replies)
	}
	return n
}

// Walk 先序遍历
func Walk[T Item](roots []*Node[T], fn func(n *Node[T])) {
	for _, r := range roots {
		fn(r)
		Walk(r.Replies, fn)
	}
}
