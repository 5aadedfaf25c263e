package vdom

// Diff compares two render descriptions and returns the patches needed
// to transform prev into next. Identical trees produce no patches,
// which is what makes render idempotence observable.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// diff recursively compares nodes and appends patches. parentNID is the
// identity of the enclosing element, used for nodes without their own.
func diff(prev, next *VNode, parentNID string, patches *[]Patch) {
	if prev == nil && next == nil {
		return
	}

	// Node added; the parent's child walk emits the insert.
	if prev == nil {
		return
	}

	if next == nil {
		*patches = append(*patches, Patch{
			Op:  PatchRemoveNode,
			NID: prev.NID,
		})
		return
	}

	if prev.Kind != next.Kind {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			NID:  prev.NID,
			Node: next,
		})
		return
	}

	switch prev.Kind {
	case KindText:
		diffText(prev, next, parentNID, patches)
	case KindElement:
		diffElement(prev, next, patches)
	case KindFragment:
		diffChildren(prev, next, parentNID, patches)
	case KindRaw:
		diffRaw(prev, next, parentNID, patches)
	}
}

// diffText compares text nodes. Text nodes have no identity of their
// own; patches address the parent element.
func diffText(prev, next *VNode, parentNID string, patches *[]Patch) {
	next.NID = prev.NID

	if prev.Text != next.Text {
		target := prev.NID
		if target == "" {
			target = parentNID
		}
		if target != "" {
			*patches = append(*patches, Patch{
				Op:    PatchSetText,
				NID:   target,
				Value: next.Text,
			})
		}
	}
}

// diffElement compares element nodes.
func diffElement(prev, next *VNode, patches *[]Patch) {
	if prev.Tag != next.Tag {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			NID:  prev.NID,
			Node: next,
		})
		return
	}

	next.NID = prev.NID

	diffProps(prev, next, patches)
	diffChildren(prev, next, prev.NID, patches)
}

// diffRaw compares raw HTML nodes. A change replaces the parent content.
func diffRaw(prev, next *VNode, parentNID string, patches *[]Patch) {
	next.NID = prev.NID

	if prev.Text != next.Text {
		target := prev.NID
		if target == "" {
			target = parentNID
		}
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			NID:  target,
			Node: next,
		})
	}
}

// diffProps compares attributes. Bool-valued attributes have presence
// semantics: true renders the bare attribute, false is absence.
func diffProps(prev, next *VNode, patches *[]Patch) {
	// Removed or changed attributes.
	for key, prevVal := range prev.Props {
		nextVal, ok := next.Props[key]
		if !ok {
			if present, _ := AttrValue(prevVal); present {
				*patches = append(*patches, Patch{
					Op:  PatchRemoveAttr,
					NID: prev.NID,
					Key: key,
				})
			}
			continue
		}
		emitAttrChange(prev.NID, key, prevVal, nextVal, patches)
	}

	// Added attributes.
	for key, nextVal := range next.Props {
		if _, ok := prev.Props[key]; ok {
			continue
		}
		if present, value := AttrValue(nextVal); present {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				NID:   prev.NID,
				Key:   key,
				Value: value,
			})
		}
	}
}

func emitAttrChange(nid, key string, prevVal, nextVal any, patches *[]Patch) {
	prevPresent, prevStr := AttrValue(prevVal)
	nextPresent, nextStr := AttrValue(nextVal)

	switch {
	case prevPresent && !nextPresent:
		*patches = append(*patches, Patch{Op: PatchRemoveAttr, NID: nid, Key: key})
	case nextPresent && (!prevPresent || prevStr != nextStr):
		*patches = append(*patches, Patch{Op: PatchSetAttr, NID: nid, Key: key, Value: nextStr})
	}
}

// diffChildren compares child lists positionally. Length changes emit
// inserts and removes; element trees in Glint have stable shapes, so a
// keyed reorder pass is not needed here.
func diffChildren(prev, next *VNode, parentNID string, patches *[]Patch) {
	n := len(prev.Children)
	if len(next.Children) < n {
		n = len(next.Children)
	}

	for i := 0; i < n; i++ {
		diff(prev.Children[i], next.Children[i], parentNID, patches)
	}

	// Removed children.
	for i := n; i < len(prev.Children); i++ {
		child := prev.Children[i]
		nid := child.NID
		if nid == "" {
			nid = parentNID
		}
		*patches = append(*patches, Patch{
			Op:  PatchRemoveNode,
			NID: nid,
		})
	}

	// Added children.
	for i := n; i < len(next.Children); i++ {
		*patches = append(*patches, Patch{
			Op:       PatchInsertNode,
			ParentID: parentNID,
			Index:    i,
			Node:     next.Children[i],
		})
	}
}
