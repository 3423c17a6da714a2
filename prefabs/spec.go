package prefabs

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/ringworld/attributes"
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/input"
)

const (
	CameraFile   = "camera.yaml"
	ControlsFile = "controls.yaml"
	EffectsFile  = "effects.yaml"
	LevelFile    = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over out, so fields missing from the file
// keep whatever out already held.
func LoadSpecInto[T any](filename string, out *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// LoadCameraSettings layers the file over the built-in defaults and
// sanitises the result. A missing or broken file yields the defaults along
// with the error, so callers can log and carry on.
func LoadCameraSettings(filename string) (camera.Settings, error) {
	if filename == "" {
		filename = CameraFile
	}
	settings := camera.DefaultSettings()
	if err := LoadSpecInto(filename, &settings); err != nil {
		return camera.DefaultSettings(), err
	}
	return settings.Sanitized(), nil
}

// ControlsSpec is controls.yaml: look sensitivities plus the action map.
type ControlsSpec struct {
	Look           input.LookSettings `yaml:"look"`
	input.Bindings `yaml:",inline"`
}

func LoadControls() (ControlsSpec, error) {
	spec := ControlsSpec{Look: input.DefaultLookSettings()}
	if err := LoadSpecInto(ControlsFile, &spec); err != nil {
		return ControlsSpec{Look: input.DefaultLookSettings()}, err
	}
	if err := spec.Bindings.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", ControlsFile, err)
	}
	return spec, nil
}

// EffectsSpec is the named effect library referenced by prefabs.
type EffectsSpec struct {
	Effects map[string]attributes.Effect `yaml:"effects"`
}

// LoadEffects returns every valid effect keyed by name. Invalid entries are
// reported together and left out.
func LoadEffects() (map[string]attributes.Effect, error) {
	spec, err := LoadSpec[EffectsSpec](EffectsFile)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(spec.Effects))
	for name := range spec.Effects {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]attributes.Effect, len(spec.Effects))
	var errs []error
	for _, name := range names {
		e := spec.Effects[name]
		if e.Name == "" {
			e.Name = name
		}
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("effect %s: %w", name, err))
			continue
		}
		out[name] = e
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("prefabs: %s: %w", EffectsFile, errors.Join(errs...))
	}
	return out, nil
}

// SelectionSpec configures the authoritative selection service.
type SelectionSpec struct {
	Strategy  string  `yaml:"strategy"`
	TagPolicy string  `yaml:"tag_policy"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
}

// SpawnSpec places one entity prefab. Non-empty overrides replace the
// prefab's unit identity.
type SpawnSpec struct {
	Prefab   string         `yaml:"prefab"`
	Location common.Vec3    `yaml:"location"`
	Rotation common.Rotator `yaml:"rotation"`
	Name     string         `yaml:"name"`
	Team     string         `yaml:"team"`
	Owner    string         `yaml:"owner"`
}

// BoxSpec is static blocking geometry.
type BoxSpec struct {
	Min      common.Vec3      `yaml:"min"`
	Max      common.Vec3      `yaml:"max"`
	Channels []camera.Channel `yaml:"channels"`
}

type PillarSpec struct {
	Base     common.Vec3      `yaml:"base"`
	Radius   float64          `yaml:"radius"`
	Height   float64          `yaml:"height"`
	Channels []camera.Channel `yaml:"channels"`
}

type PlatformSpec struct {
	Center    common.Vec3 `yaml:"center"`
	Width     float64     `yaml:"width"`
	Depth     float64     `yaml:"depth"`
	Thickness float64     `yaml:"thickness"`
	Velocity  common.Vec3 `yaml:"velocity"`
	Travel    float64     `yaml:"travel"`
}

// LevelSpec is the sandbox arena shared by the client and the headless server.
type LevelSpec struct {
	Name      string         `yaml:"name"`
	Selection SelectionSpec  `yaml:"selection"`
	Player    SpawnSpec      `yaml:"player"`
	Spawns    []SpawnSpec    `yaml:"spawns"`
	Boxes     []BoxSpec      `yaml:"boxes"`
	Pillars   []PillarSpec   `yaml:"pillars"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

func LoadLevel(filename string) (LevelSpec, error) {
	if filename == "" {
		filename = LevelFile
	}
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return LevelSpec{}, err
	}
	for i, b := range spec.Boxes {
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			log.Printf("prefabs: %s: box %d has inverted bounds, reordering", filename, i)
		}
	}
	return spec, nil
}
