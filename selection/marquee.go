package selection

import "github.com/milk9111/ringworld/common"

// Marquee captures a drag on the client. Nothing is sent while dragging;
// Release produces exactly one request and Cancel produces none.
type Marquee struct {
	ActorTags   []string
	AbilityTags []string

	drawing bool
	start   common.Vec2
	current common.Vec2
}

func (m *Marquee) Begin(at common.Vec2) {
	m.drawing = true
	m.start = at
	m.current = at
}

// Update moves the live corner. Ignored when no drag is in progress.
func (m *Marquee) Update(at common.Vec2) {
	if !m.drawing {
		return
	}
	m.current = at
}

// Release ends the drag and builds the request.
func (m *Marquee) Release(add, remove bool) (Request, bool) {
	if !m.drawing {
		return Request{}, false
	}
	req := Request{
		Start:               m.start,
		End:                 m.current,
		ActorTags:           append([]string(nil), m.ActorTags...),
		AbilityTags:         append([]string(nil), m.AbilityTags...),
		AddToSelection:      add,
		RemoveFromSelection: remove,
	}
	m.reset()
	return req, true
}

func (m *Marquee) Cancel() {
	m.reset()
}

func (m *Marquee) Drawing() bool {
	return m.drawing
}

// Rect is the normalised rectangle being dragged.
func (m *Marquee) Rect() (Rect, bool) {
	if !m.drawing {
		return Rect{}, false
	}
	return NormalizeRect(m.start, m.current), true
}

func (m *Marquee) reset() {
	m.drawing = false
	m.start = common.Vec2{}
	m.current = common.Vec2{}
}
