// avl_tree.go

// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already present.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrKeyNotFound is returned by Delete and Get when the key is absent.
	ErrKeyNotFound = errors.New("key not found")
	// ErrRankOutOfRange is returned by KthLargest when k is not in [1, Len()].
	ErrRankOutOfRange = errors.New("rank out of range")
)

// AVLTree is a self-balancing binary search tree with unique keys. Every
// node tracks the size of its subtrees, so KthLargest answers "which key
// is the k-th largest" in O(log n) on top of ordinary insert/delete/get.
//
// Not safe for concurrent use; callers that share a tree must serialize
// whole operations themselves.
type AVLTree[K constraints.Ordered, V any] struct {
	Root   *AVLNode[K, V]
	length int
}

func NewAVLTree[K constraints.Ordered, V any]() *AVLTree[K, V] {
	return &AVLTree[K, V]{Root: nil}
}

// Len reports the number of keys currently in the tree.
func (tree *AVLTree[K, V]) Len() int {
	return tree.length
}

// Clear resets the tree to empty. Used by callers that run repeated
// trials against the same tree instead of rebuilding it from scratch.
func (tree *AVLTree[K, V]) Clear() {
	tree.Root = nil
	tree.length = 0
}

func (tree *AVLTree[K, V]) getHeight(node *AVLNode[K, V]) int {
	if node == nil {
		return 0
	}
	return node.Height
}

func (tree *AVLTree[K, V]) updateHeight(node *AVLNode[K, V]) {
	node.Height = max(tree.getHeight(node.Left), tree.getHeight(node.Right)) + 1
}

// updateCounts recomputes both subtree counters from the children. The
// counters are always rebuilt from scratch, never patched incrementally;
// a stale counter breaks KthLargest silently while every other invariant
// still holds.
func (tree *AVLTree[K, V]) updateCounts(node *AVLNode[K, V]) {
	node.LeftCount = node.Left.subtreeSize()
	node.RightCount = node.Right.subtreeSize()
}

// getBalanceFactor is height(right) - height(left). Positive means
// right-heavy, negative means left-heavy.
func (tree *AVLTree[K, V]) getBalanceFactor(node *AVLNode[K, V]) int {
	if node == nil {
		return 0
	}
	return tree.getHeight(node.Right) - tree.getHeight(node.Left)
}

func (tree *AVLTree[K, V]) rotateLeft(node *AVLNode[K, V]) *AVLNode[K, V] {
	if node == nil || node.Right == nil {
		return node // Nothing to rotate
	}

	// Identify the pivot node (new root)
	pivot := node.Right

	// Perform the rotation
	node.Right = pivot.Left
	pivot.Left = node

	// Demoted node first: the pivot's height and counters depend on it
	tree.updateHeight(node)
	tree.updateCounts(node)
	tree.updateHeight(pivot)
	tree.updateCounts(pivot)

	return pivot // Return the new root node
}

func (tree *AVLTree[K, V]) rotateRight(node *AVLNode[K, V]) *AVLNode[K, V] {
	if node == nil || node.Left == nil {
		return node // Nothing to rotate
	}

	// Identify the pivot node (new root)
	pivot := node.Left

	// Perform the rotation
	node.Left = pivot.Right
	pivot.Right = node

	// Demoted node first: the pivot's height and counters depend on it
	tree.updateHeight(node)
	tree.updateCounts(node)
	tree.updateHeight(pivot)
	tree.updateCounts(pivot)

	return pivot // Return the new root node
}

// rebalance restores the AVL balance bound at node after a structural
// change somewhere below it, and returns the new subtree root.
func (tree *AVLTree[K, V]) rebalance(node *AVLNode[K, V]) *AVLNode[K, V] {
	balanceFactor := tree.getBalanceFactor(node)

	// Right-heavy
	if balanceFactor >= 2 {
		child := node.Right
		if tree.getHeight(child.Left) > tree.getHeight(child.Right) {
			// Right-Left case
			node.Right = tree.rotateRight(child)
		}
		return tree.rotateLeft(node)
	}

	// Left-heavy
	if balanceFactor <= -2 {
		child := node.Left
		if tree.getHeight(child.Right) > tree.getHeight(child.Left) {
			// Left-Right case
			node.Left = tree.rotateLeft(child)
		}
		return tree.rotateRight(node)
	}

	return node
}

// Insert adds a key with its value. Duplicate keys are rejected with
// ErrDuplicateKey and the tree is left untouched.
func (tree *AVLTree[K, V]) Insert(key K, value V) error {
	root, err := tree.insertRecursive(tree.Root, key, value)
	if err != nil {
		return err
	}
	tree.Root = root
	tree.length++
	return nil
}

// insertRecursive descends to the insertion point, then fixes height,
// counters and balance at every level on the way back up. Each call
// returns the (possibly new) root of its subtree so the parent can relink.
func (tree *AVLTree[K, V]) insertRecursive(node *AVLNode[K, V], key K, value V) (*AVLNode[K, V], error) {
	if node == nil {
		return &AVLNode[K, V]{Key: key, Value: value, Height: 1}, nil
	}

	if key < node.Key {
		left, err := tree.insertRecursive(node.Left, key, value)
		if err != nil {
			return node, err
		}
		node.Left = left
	} else if key > node.Key {
		right, err := tree.insertRecursive(node.Right, key, value)
		if err != nil {
			return node, err
		}
		node.Right = right
	} else {
		return node, fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}

	tree.updateHeight(node)
	tree.updateCounts(node)
	return tree.rebalance(node), nil
}

// Delete removes a key. Absent keys are rejected with ErrKeyNotFound and
// the tree is left untouched.
func (tree *AVLTree[K, V]) Delete(key K) error {
	root, err := tree.deleteRecursive(tree.Root, key)
	if err != nil {
		return err
	}
	tree.Root = root
	tree.length--
	return nil
}

func (tree *AVLTree[K, V]) deleteRecursive(node *AVLNode[K, V], key K) (*AVLNode[K, V], error) {
	if node == nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	if key < node.Key {
		left, err := tree.deleteRecursive(node.Left, key)
		if err != nil {
			return node, err
		}
		node.Left = left
	} else if key > node.Key {
		right, err := tree.deleteRecursive(node.Right, key)
		if err != nil {
			return node, err
		}
		node.Right = right
	} else { // Found the node to delete
		// Case 1: No children
		if node.Left == nil && node.Right == nil {
			return nil, nil
		}
		// Case 2: One child (right)
		if node.Left == nil {
			return node.Right, nil
		}
		// Case 3: One child (left)
		if node.Right == nil {
			return node.Left, nil
		}
		// Case 4: Two children. The in-order successor's key and value
		// take this node's place, then the successor's old slot is the
		// node that physically goes away.
		pivot := tree.findMin(node.Right)
		node.Key = pivot.Key
		node.Value = pivot.Value
		right, err := tree.deleteRecursive(node.Right, pivot.Key)
		if err != nil {
			return node, err
		}
		node.Right = right
	}

	tree.updateHeight(node)
	tree.updateCounts(node)
	return tree.rebalance(node), nil
}

// findMin returns the leftmost node of the given subtree.
func (tree *AVLTree[K, V]) findMin(node *AVLNode[K, V]) *AVLNode[K, V] {
	for node.Left != nil {
		node = node.Left
	}
	return node
}

// Get looks up the value stored under key.
func (tree *AVLTree[K, V]) Get(key K) (V, error) {
	node := searchNode(tree.Root, key)
	if node == nil {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return node.Value, nil
}

// Has reports whether key is present.
func (tree *AVLTree[K, V]) Has(key K) bool {
	return searchNode(tree.Root, key) != nil
}

// searchNode is a helper function that traverses the tree recursively.
func searchNode[K constraints.Ordered, V any](node *AVLNode[K, V], key K) *AVLNode[K, V] {
	if node == nil {
		return nil
	}

	if key < node.Key {
		return searchNode(node.Left, key)
	} else if key > node.Key {
		return searchNode(node.Right, key)
	}
	return node
}

// KthLargest returns the k-th largest key and its value, 1-indexed from
// the largest key downward: k=1 is the maximum. Ranks outside [1, Len()]
// are rejected with ErrRankOutOfRange before any descent happens, so the
// walk below never runs off a missing child.
func (tree *AVLTree[K, V]) KthLargest(k int) (K, V, error) {
	if k < 1 || k > tree.length {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, fmt.Errorf("%w: k=%d with %d keys", ErrRankOutOfRange, k, tree.length)
	}
	node := kthLargestNode(tree.Root, k)
	return node.Key, node.Value, nil
}

// kthLargestNode walks down using the right-subtree counters. At each node
// the node's own rank among its subtree (counting from the largest) is
// RightCount+1; the query either stops here, stays entirely inside the
// right subtree, or skips this node and the right subtree and continues
// left with an adjusted rank. One level per step, so O(log n) when balanced.
func kthLargestNode[K constraints.Ordered, V any](node *AVLNode[K, V], k int) *AVLNode[K, V] {
	rank := node.RightCount + 1
	if k == rank {
		return node
	}
	if k < rank {
		return kthLargestNode(node.Right, k)
	}
	return kthLargestNode(node.Left, k-rank)
}

// Keys returns all keys in ascending order.
func (tree *AVLTree[K, V]) Keys() []K {
	keys := make([]K, 0, tree.length)
	var walk func(node *AVLNode[K, V])
	walk = func(node *AVLNode[K, V]) {
		if node == nil {
			return
		}
		walk(node.Left)
		keys = append(keys, node.Key)
		walk(node.Right)
	}
	walk(tree.Root)
	return keys
}
