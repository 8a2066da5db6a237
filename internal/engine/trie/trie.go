// Package trie implements the prefix tree backing autocomplete. Each node
// caches up to a fixed number of representative items, so lookups are O(k)
// in the prefix length and never touch the full corpus. The cap makes
// results for very generic prefixes a sample rather than an exhaustive
// answer; exhaustive retrieval belongs to the facet index.
package trie

import "github.com/edufinder/campus-search/internal/engine/textutil"

type node[T any] struct {
	children map[byte]*node[T]
	items    []T
	keys     map[string]struct{}
}

func newNode[T any]() *node[T] {
	return &node[T]{
		children: make(map[byte]*node[T]),
		keys:     make(map[string]struct{}),
	}
}

// Trie is a byte-indexed prefix tree over searchable text. It is built once
// and read concurrently without locks afterwards.
type Trie[T any] struct {
	root     *node[T]
	nodeCap  int
	keyFn    func(T) string
	inserted int
}

// New creates a Trie whose nodes hold at most nodeCap items each. keyFn
// yields the identity key used to deduplicate items within a node.
func New[T any](nodeCap int, keyFn func(T) string) *Trie[T] {
	if nodeCap <= 0 {
		nodeCap = 10
	}
	return &Trie[T]{
		root:    newNode[T](),
		nodeCap: nodeCap,
		keyFn:   keyFn,
	}
}

// Insert walks one node per searchable character of text, creating nodes as
// needed, and appends item to every visited node whose item list has room
// and does not already hold an item with the same identity key. The
// insertion counter is exact regardless of the per-node cap.
func (t *Trie[T]) Insert(text string, item T) {
	searchable := textutil.Searchable(text)
	if searchable == "" {
		return
	}
	t.inserted++
	key := t.keyFn(item)

	current := t.root
	for i := 0; i < len(searchable); i++ {
		c := searchable[i]
		next, ok := current.children[c]
		if !ok {
			next = newNode[T]()
			current.children[c] = next
		}
		current = next
		if _, dup := current.keys[key]; dup {
			continue
		}
		if len(current.items) >= t.nodeCap {
			continue
		}
		current.keys[key] = struct{}{}
		current.items = append(current.items, item)
	}
}

// Find walks the searchable characters of prefix and returns up to limit
// items cached at the terminal node, in insertion order. A prefix whose
// path does not exist yields nil. limit <= 0 returns everything the node
// holds.
func (t *Trie[T]) Find(prefix string, limit int) []T {
	searchable := textutil.Searchable(prefix)
	if searchable == "" {
		return nil
	}

	current := t.root
	for i := 0; i < len(searchable); i++ {
		next, ok := current.children[searchable[i]]
		if !ok {
			return nil
		}
		current = next
	}

	items := current.items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// TotalInserted returns the exact number of Insert calls that indexed a
// non-empty text.
func (t *Trie[T]) TotalInserted() int {
	return t.inserted
}

// NodeCount returns the number of allocated nodes, excluding the root.
func (t *Trie[T]) NodeCount() int {
	return countNodes(t.root)
}

func countNodes[T any](n *node[T]) int {
	total := 0
	for _, child := range n.children {
		total += 1 + countNodes(child)
	}
	return total
}
