package vdom

import "fmt"

// NIDGenerator produces sequential node identities for one mounted
// instance. Identities are stable across re-renders as long as the
// tree shape is stable (see CopyNIDs).
type NIDGenerator struct {
	counter uint32
}

// Next returns the next node identity.
func (g *NIDGenerator) Next() string {
	g.counter++
	return fmt.Sprintf("n%d", g.counter)
}

// Reset restarts the sequence. Used when an instance is remounted.
func (g *NIDGenerator) Reset() {
	g.counter = 0
}

// AssignNIDs walks the tree and assigns identities to element nodes
// that do not have one yet. Text, fragment and raw nodes address their
// parent element instead.
func AssignNIDs(node *VNode, gen *NIDGenerator) {
	if node == nil {
		return
	}
	if node.Kind == KindElement && node.NID == "" {
		node.NID = gen.Next()
	}
	for _, child := range node.Children {
		AssignNIDs(child, gen)
	}
}

// CopyNIDs copies identities from prev onto next wherever the tree
// shape matches (same kind, same tag, same position). Nodes that do
// not match keep an empty NID and receive a fresh one from AssignNIDs.
func CopyNIDs(prev, next *VNode) {
	if prev == nil || next == nil {
		return
	}
	if prev.Kind != next.Kind {
		return
	}
	if prev.Kind == KindElement && prev.Tag != next.Tag {
		return
	}

	next.NID = prev.NID

	n := len(prev.Children)
	if len(next.Children) < n {
		n = len(next.Children)
	}
	for i := 0; i < n; i++ {
		CopyNIDs(prev.Children[i], next.Children[i])
	}
}
