package host

import (
	"encoding/json"
	stderrors "errors"

	"github.com/glintkit/glint/internal/errors"
	"github.com/glintkit/glint/pkg/render"
	"github.com/glintkit/glint/pkg/vdom"
)

// Frame types on the wire. Frames are JSON text messages.
const (
	FramePatches = "patches"
	FrameError   = "error"
	FramePing    = "ping"
	FramePong    = "pong"
)

// Frame is the wire envelope in both directions.
type Frame struct {
	Type string `json:"type"`

	// Patches frames (server -> client).
	Seq     uint64      `json:"seq,omitempty"`
	Patches []WirePatch `json:"patches,omitempty"`

	// Attribute events (client -> server).
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`

	// Error frames (server -> client).
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// WirePatch is one patch operation in client-applicable form. Inserted
// and replacement nodes travel as rendered HTML so the client never
// needs the server's node representation.
type WirePatch struct {
	Op       string `json:"op"`
	NID      string `json:"nid,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
	HTML     string `json:"html,omitempty"`
	Index    int    `json:"index,omitempty"`
	ParentID string `json:"parent,omitempty"`
}

// patchOps maps patch operations to their wire names.
var patchOps = map[vdom.PatchOp]string{
	vdom.PatchSetText:     "set-text",
	vdom.PatchSetAttr:     "set-attr",
	vdom.PatchRemoveAttr:  "remove-attr",
	vdom.PatchInsertNode:  "insert-node",
	vdom.PatchRemoveNode:  "remove-node",
	vdom.PatchReplaceNode: "replace-node",
}

// wireRenderer renders inserted nodes with identities so follow-up
// patches can address them.
var wireRenderer = render.NewRenderer(render.RendererConfig{IncludeNIDs: true})

// EncodePatches builds a patches frame.
func EncodePatches(seq uint64, patches []vdom.Patch) ([]byte, error) {
	frame := Frame{
		Type:    FramePatches,
		Seq:     seq,
		Patches: make([]WirePatch, 0, len(patches)),
	}

	for _, p := range patches {
		wp := WirePatch{
			Op:       patchOps[p.Op],
			NID:      p.NID,
			Key:      p.Key,
			Value:    p.Value,
			Index:    p.Index,
			ParentID: p.ParentID,
		}
		if p.Node != nil {
			html, err := wireRenderer.RenderToString(p.Node)
			if err != nil {
				return nil, errors.New("E041").Wrap(err)
			}
			wp.HTML = html
		}
		frame.Patches = append(frame.Patches, wp)
	}

	return json.Marshal(frame)
}

// EncodeError builds an error frame from a structured error.
func EncodeError(err error) []byte {
	frame := Frame{Type: FrameError, Message: err.Error()}
	var ge *errors.GlintError
	if stderrors.As(err, &ge) {
		frame.Code = ge.Code
		frame.Message = ge.Message
		if ge.Detail != "" {
			frame.Message += ": " + ge.Detail
		}
	}
	data, _ := json.Marshal(frame)
	return data
}

// DecodeFrame parses an inbound client frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	if frame.Type == "" {
		return nil, errors.New("E040").WithDetail("frame has no type")
	}
	return &frame, nil
}

// errUnsupportedEvent builds the dispatch error for unknown event types.
func errUnsupportedEvent(eventType string) error {
	return errors.New("E041").WithDetailf("event type %q", eventType)
}
