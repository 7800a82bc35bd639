package domain

import (
	"cmp"
	"slices"
)

// Hierarchy levels for container nodes
const (
	LevelUnknown  = -1
	LevelCategory = 0
	LevelGrouping = 1
	LevelItem     = 2
)

// HierarchyLabel maps a level to its display label
func HierarchyLabel(level int) string {
	switch level {
	case LevelCategory:
		return "Category"
	case LevelGrouping:
		return "Grouping"
	case LevelItem:
		return "Item"
	default:
		return "Unknown"
	}
}

// TreeNode represents a node in the container forest for rendering
type TreeNode struct {
	Node     *Node
	Level    int
	Children []*TreeNode
	Parent   *TreeNode
}

// Flatten returns the node and all descendants in depth-first order
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	for _, child := range n.Children {
		child.flattenRecursive(result)
	}
}

// Depth returns the depth of this node in the rendered tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// SortNodes sorts nodes by title, then ID
func SortNodes(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int {
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
