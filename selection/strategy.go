package selection

import (
	"fmt"

	"github.com/milk9111/ringworld/camera"
)

// Strategy finds the actors whose on-screen footprint touches rect.
type Strategy interface {
	Name() string
	Candidates(proj camera.Projection, rect Rect, actors []Actor) ([]Actor, error)
}

// FrustumStrategy tests world bounds against the volume under the marquee.
type FrustumStrategy struct {
	Near float64
	Far  float64
}

func (FrustumStrategy) Name() string { return "frustum" }

func (s FrustumStrategy) Candidates(proj camera.Projection, rect Rect, actors []Actor) ([]Actor, error) {
	near, far := s.Near, s.Far
	if near <= 0 {
		near = DefaultNearDistance
	}
	if far <= 0 {
		far = DefaultFarDistance
	}
	frustum, err := BuildFrustum(proj, rect, near, far)
	if err != nil {
		return nil, err
	}
	var out []Actor
	for _, a := range actors {
		if a != nil && frustum.IntersectsBox(a.Bounds()) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ProjectionStrategy projects each actor origin to the screen and keeps the
// ones that land inside rect.
type ProjectionStrategy struct{}

func (ProjectionStrategy) Name() string { return "projection" }

func (ProjectionStrategy) Candidates(proj camera.Projection, rect Rect, actors []Actor) ([]Actor, error) {
	if rect.Degenerate() {
		return nil, ErrDegenerateRect
	}
	var out []Actor
	for _, a := range actors {
		if a == nil {
			continue
		}
		p, ok := proj.Project(a.Location())
		if ok && rect.Contains(p) {
			out = append(out, a)
		}
	}
	return out, nil
}

// StrategyByName maps a config value onto a Strategy.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "frustum":
		return FrustumStrategy{}, nil
	case "projection":
		return ProjectionStrategy{}, nil
	default:
		return nil, fmt.Errorf("selection: unknown strategy %q", name)
	}
}
