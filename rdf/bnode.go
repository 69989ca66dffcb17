package rdf

import "fmt"

// nodeTable canonicalizes blank node labels within one decode or encode
// call. Labels seen in the document map to one node each; fresh nodes get
// generated labels that never collide with document labels, even when the
// document label shows up after the generated one.
type nodeTable struct {
	byLabel   map[string]BlankNode
	used      map[string]bool
	generated map[string]bool
	counter   int
}

func newNodeTable() *nodeTable {
	return &nodeTable{
		byLabel:   map[string]BlankNode{},
		used:      map[string]bool{},
		generated: map[string]bool{},
	}
}

// node returns the canonical blank node for a document label. A label
// already taken by a generated node is remapped to keep the two nodes
// distinct.
func (t *nodeTable) node(label string) BlankNode {
	if existing, ok := t.byLabel[label]; ok {
		return existing
	}
	id := label
	if t.generated[label] {
		id = t.freshID()
	}
	node := BlankNode{ID: id}
	t.byLabel[label] = node
	t.used[id] = true
	return node
}

// fresh allocates a blank node with a label unused in this call.
func (t *nodeTable) fresh() BlankNode {
	return BlankNode{ID: t.freshID()}
}

func (t *nodeTable) freshID() string {
	for {
		t.counter++
		id := fmt.Sprintf("b%d", t.counter)
		if !t.used[id] {
			t.used[id] = true
			t.generated[id] = true
			return id
		}
	}
}
