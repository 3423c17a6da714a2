package selection

import "github.com/milk9111/ringworld/common"

// Request is the marquee payload a client sends on release. Start and End are
// pixel coordinates in any order.
type Request struct {
	Start               common.Vec2 `json:"start"`
	End                 common.Vec2 `json:"end"`
	ActorTags           []string    `json:"actor_tags,omitempty"`
	AbilityTags         []string    `json:"ability_tags,omitempty"`
	AddToSelection      bool        `json:"add_to_selection"`
	RemoveFromSelection bool        `json:"remove_from_selection"`
}

func (r Request) Mode() Mode {
	return ModeFor(r.AddToSelection, r.RemoveFromSelection)
}

func (r Request) Rect() Rect {
	return NormalizeRect(r.Start, r.End)
}
