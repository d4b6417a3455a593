package minnow

import "sort"

// TrieNode is one arena slot. Children maps a rune to the index of the child
// node in the arena. Terminal marks the end of a complete vocabulary term,
// Weight is the term's total corpus frequency and orders suggestions.
type TrieNode struct {
	Children map[rune]int32
	Terminal bool
	Weight   int
}

// Trie is a prefix tree over the normalized vocabulary, stored as an arena
// of nodes indexed by integer handles. Node 0 is the root. No pointers, so
// the whole structure gob-encodes directly.
type Trie struct {
	Nodes []TrieNode
}

func NewTrie() *Trie {
	return &Trie{
		Nodes: []TrieNode{{Children: make(map[rune]int32)}},
	}
}

// Insert adds a term with the given suggestion weight. Inserting an existing
// term overwrites its weight.
func (t *Trie) Insert(term string, weight int) {
	cur := int32(0)
	for _, r := range term {
		next, ok := t.Nodes[cur].Children[r]
		if !ok {
			t.Nodes = append(t.Nodes, TrieNode{Children: make(map[rune]int32)})
			next = int32(len(t.Nodes) - 1)
			t.Nodes[cur].Children[r] = next
		}
		cur = next
	}
	t.Nodes[cur].Terminal = true
	t.Nodes[cur].Weight = weight
}

// Suggest returns up to limit complete terms starting with prefix, ordered
// by descending weight, then lexicographically. An unknown prefix is a
// normal empty result. Cost is proportional to the prefix length plus the
// subtree walked, not the vocabulary size.
func (t *Trie) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	cur := int32(0)
	for _, r := range prefix {
		next, ok := t.Nodes[cur].Children[r]
		if !ok {
			return []string{}
		}
		cur = next
	}

	type suggestion struct {
		term   string
		weight int
	}
	var found []suggestion
	var walk func(node int32, term string)
	walk = func(node int32, term string) {
		n := t.Nodes[node]
		if n.Terminal {
			found = append(found, suggestion{term: term, weight: n.Weight})
		}
		for r, child := range n.Children {
			walk(child, term+string(r))
		}
	}
	walk(cur, prefix)

	sort.Slice(found, func(i, j int) bool {
		if found[i].weight != found[j].weight {
			return found[i].weight > found[j].weight
		}
		return found[i].term < found[j].term
	})
	if len(found) > limit {
		found = found[:limit]
	}
	terms := make([]string, len(found))
	for i, s := range found {
		terms[i] = s.term
	}
	return terms
}

// Terms returns every complete term in lexicographic order.
func (t *Trie) Terms() []string {
	var terms []string
	var walk func(node int32, term string)
	walk = func(node int32, term string) {
		n := t.Nodes[node]
		if n.Terminal {
			terms = append(terms, term)
		}
		for r, child := range n.Children {
			walk(child, term+string(r))
		}
	}
	walk(0, "")
	sort.Strings(terms)
	return terms
}

// Size is the number of complete terms.
func (t *Trie) Size() int {
	size := 0
	for _, n := range t.Nodes {
		if n.Terminal {
			size++
		}
	}
	return size
}
