package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert new node
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchReplaceNode PatchOp = 0x06 // Replace node entirely
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// Patch is a single operation that transforms the previous description
// into the next one.
type Patch struct {
	Op       PatchOp // Operation type
	NID      string  // Target node identity
	Key      string  // Attribute key (SetAttr/RemoveAttr)
	Value    string  // New value (SetText/SetAttr)
	Node     *VNode  // For InsertNode/ReplaceNode
	Index    int     // Insert position
	ParentID string  // Parent for InsertNode
}
