// Package netrpc replicates camera views and marquee requests between a
// client and the authoritative selection server over a websocket.
package netrpc

import (
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/selection"
)

const ProtocolVersion = 1

const (
	typeHello  = "hello"
	typeView   = "view"
	typeSelect = "select"
	typeResult = "result"
	typeError  = "error"
)

// ControllerParam is the query parameter a client uses to ask for a
// specific controller ID. The server assigns one when it is missing.
const ControllerParam = "controller"

type viewPayload struct {
	Location    common.Vec3     `json:"location"`
	Rotation    common.Rotator  `json:"rotation"`
	FieldOfView float64         `json:"fov"`
	Viewport    camera.Viewport `json:"viewport"`
}

func newViewPayload(view camera.ViewInfo, viewport camera.Viewport) *viewPayload {
	return &viewPayload{
		Location:    view.Location,
		Rotation:    view.Rotation,
		FieldOfView: view.FieldOfView,
		Viewport:    viewport,
	}
}

func (v viewPayload) projection() (camera.Projection, error) {
	return camera.NewProjection(camera.ViewInfo{
		Location:    v.Location,
		Rotation:    v.Rotation,
		FieldOfView: v.FieldOfView,
	}, v.Viewport)
}

// Result is what the server reports back after resolving a request.
type Result struct {
	Seq      uint64             `json:"seq"`
	Selected []selection.Handle `json:"selected"`
	Added    []selection.Handle `json:"added,omitempty"`
	Removed  []selection.Handle `json:"removed,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type message struct {
	Ver        int                `json:"ver"`
	Type       string             `json:"type"`
	Seq        uint64             `json:"seq,omitempty"`
	Controller string             `json:"controller,omitempty"`
	View       *viewPayload       `json:"view,omitempty"`
	Request    *selection.Request `json:"request,omitempty"`
	Result     *Result            `json:"result,omitempty"`
	Error      string             `json:"error,omitempty"`
}
