package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/ringworld/attributes"
	"github.com/milk9111/ringworld/common"
)

// EntityBuildSpec is an entity prefab: a name plus raw component specs
// keyed by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	if err := DecodeComponentSpecInto(raw, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeComponentSpecInto decodes raw over out, keeping defaults for
// missing fields.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

type PlayerComponentSpec struct {
	Controller  string  `yaml:"controller"`
	MoveSpeed   float64 `yaml:"move_speed"`
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
}

type TransformComponentSpec struct {
	Location common.Vec3    `yaml:"location"`
	Rotation common.Rotator `yaml:"rotation"`
}

type SocketsComponentSpec map[string]common.Vec3

type RiderComponentSpec struct {
	HalfHeight float64 `yaml:"half_height"`
}

type CameraRigComponentSpec struct {
	Settings      string `yaml:"settings"`
	ViewMode      string `yaml:"view_mode"`
	RightShoulder *bool  `yaml:"right_shoulder"`
	Debug         bool   `yaml:"debug"`
}

type MarqueeComponentSpec struct {
	ActorTags   []string `yaml:"actor_tags"`
	AbilityTags []string `yaml:"ability_tags"`
}

type UnitComponentSpec struct {
	Name        string      `yaml:"name"`
	Team        string      `yaml:"team"`
	Owner       string      `yaml:"owner"`
	HalfExtent  common.Vec3 `yaml:"half_extent"`
	ActorTags   []string    `yaml:"actor_tags"`
	AbilityTags []string    `yaml:"ability_tags"`
	Locked      bool        `yaml:"locked"`
	Script      string      `yaml:"script"`
}

type VitalityComponentSpec struct {
	attributes.Vitality `yaml:",inline"`
	StartupEffects      []string `yaml:"startup_effects"`
}

type HealthBarComponentSpec struct {
	HideWhenNoSource *bool       `yaml:"hide_when_no_source"`
	HideWhenFull     *bool       `yaml:"hide_when_full"`
	AimLinger        float64     `yaml:"aim_linger"`
	Offset           common.Vec3 `yaml:"offset"`
}
