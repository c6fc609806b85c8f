package main

import "golang.org/x/exp/constraints"

// AVLNode is a single node of the inventory tree. Besides the usual AVL
// height it carries the size of each subtree, which is what makes rank
// queries possible without walking the whole tree.
type AVLNode[K constraints.Ordered, V any] struct {
	Key        K
	Value      V
	Height     int
	LeftCount  int // number of nodes in the left subtree
	RightCount int // number of nodes in the right subtree
	Left       *AVLNode[K, V]
	Right      *AVLNode[K, V]
}

// subtreeSize is the node itself plus everything below it.
func (n *AVLNode[K, V]) subtreeSize() int {
	if n == nil {
		return 0
	}
	return n.LeftCount + n.RightCount + 1
}
