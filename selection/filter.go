package selection

import (
	"fmt"

	"github.com/milk9111/ringworld/tags"
)

// TagPolicy decides how the two tag categories combine when both are required.
// Within a category every required tag must be present.
type TagPolicy int

const (
	// TagPolicyAny passes an actor that satisfies either category fully.
	TagPolicyAny TagPolicy = iota
	// TagPolicyAll requires both categories.
	TagPolicyAll
)

func (p TagPolicy) String() string {
	if p == TagPolicyAll {
		return "all"
	}
	return "any"
}

func ParseTagPolicy(s string) (TagPolicy, error) {
	switch s {
	case "", "any":
		return TagPolicyAny, nil
	case "all":
		return TagPolicyAll, nil
	default:
		return TagPolicyAny, fmt.Errorf("selection: unknown tag policy %q", s)
	}
}

type Filter struct {
	ActorTags   []string
	AbilityTags tags.Container
	Policy      TagPolicy
}

// Match applies the selectable capability check and then the tag checks.
func (f Filter) Match(controller ControllerID, a Actor) bool {
	sel, ok := a.(Selectable)
	if !ok || !sel.IsSelectable(controller) {
		return false
	}
	return f.tagsMatch(a)
}

func (f Filter) tagsMatch(a Actor) bool {
	wantActor := len(f.ActorTags) > 0
	wantAbility := !f.AbilityTags.IsEmpty()

	actorOK := wantActor && hasActorTags(a, f.ActorTags)
	abilityOK := wantAbility && hasAbilityTags(a, f.AbilityTags)

	switch {
	case wantActor && wantAbility:
		if f.Policy == TagPolicyAll {
			return actorOK && abilityOK
		}
		return actorOK || abilityOK
	case wantActor:
		return actorOK
	case wantAbility:
		return abilityOK
	default:
		return true
	}
}

func hasActorTags(a Actor, required []string) bool {
	tagged, ok := a.(ActorTagged)
	if !ok {
		return false
	}
	return tagged.ActorTags().HasAll(required)
}

func hasAbilityTags(a Actor, required tags.Container) bool {
	tagged, ok := a.(AbilityTagged)
	if !ok {
		return false
	}
	return tagged.AbilityTags().HasAll(required)
}
