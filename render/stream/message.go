package stream

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/forcegraph/core"
)

// Client operations
const (
	OpDrop    = "drop"
	OpPointer = "pointer"
	OpArena   = "arena"
)

// ErrUnknownOp is returned for client messages with an unrecognized op
var ErrUnknownOp = errors.New("unknown op")

// NodeMessage is one node position on the wire
type NodeMessage struct {
	ID uint64  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgeMessage is one spring on the wire
type EdgeMessage struct {
	ID uint64 `json:"id"`
	A  uint64 `json:"a"`
	B  uint64 `json:"b"`
}

// FrameMessage is the JSON form of a frame
type FrameMessage struct {
	Type      string        `json:"type"`
	Frame     int64         `json:"frame"`
	ElapsedMs float64       `json:"elapsed_ms"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Bounces   int           `json:"bounces"`
	Nodes     []NodeMessage `json:"nodes"`
	Edges     []EdgeMessage `json:"edges"`
}

// NewFrameMessage converts a frame for the wire; slices are never nil so clients always see arrays
func NewFrameMessage(f core.Frame) FrameMessage {
	msg := FrameMessage{
		Type:      "frame",
		Frame:     f.Number,
		ElapsedMs: float64(f.Elapsed) / float64(time.Millisecond),
		Width:     f.Arena.Width,
		Height:    f.Arena.Height,
		Bounces:   f.Bounces,
		Nodes:     make([]NodeMessage, len(f.Nodes)),
		Edges:     make([]EdgeMessage, len(f.Edges)),
	}
	for i, n := range f.Nodes {
		msg.Nodes[i] = NodeMessage{ID: uint64(n.Entity), X: n.X, Y: n.Y}
	}
	for i, e := range f.Edges {
		msg.Edges[i] = EdgeMessage{ID: uint64(e.Entity), A: uint64(e.A), B: uint64(e.B)}
	}
	return msg
}

// ClientMessage is an input message from a client
//
//	{"op":"drop","id":12}
//	{"op":"pointer","x":120.5,"y":80}
//	{"op":"arena","width":1024,"height":768}
type ClientMessage struct {
	Op     string  `json:"op"`
	ID     uint64  `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (h *Hub) apply(msg ClientMessage) error {
	switch msg.Op {
	case OpDrop:
		h.scene.ReportVisualLost(core.Entity(msg.ID))
	case OpPointer:
		h.scene.SetPointerPosition(msg.X, msg.Y)
	case OpArena:
		return h.scene.SetArenaExtent(msg.Width, msg.Height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, msg.Op)
	}
	return nil
}
