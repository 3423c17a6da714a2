package camera

import "github.com/milk9111/ringworld/common"

// Orbit is the top-down yaw/pitch/distance controller. Input mutates the
// targets; Tick moves the current values toward them.
type Orbit struct {
	Yaw      float64
	Pitch    float64
	Distance float64

	TargetYaw      float64
	TargetPitch    float64
	TargetDistance float64

	settings TopDownSettings
}

// NewOrbit frames the camera at the configured default pitch and distance.
func NewOrbit(settings TopDownSettings) Orbit {
	o := Orbit{settings: settings}
	o.SetPitch(settings.Pitch)
	o.SetDistance(settings.DefaultDistance)
	return o
}

func (o *Orbit) Settings() TopDownSettings {
	return o.settings
}

// SetSettings swaps limits and re-clamps both current and target values.
func (o *Orbit) SetSettings(settings TopDownSettings) {
	o.settings = settings
	o.TargetPitch = o.clampPitch(o.TargetPitch)
	o.Pitch = o.clampPitch(o.Pitch)
	o.TargetDistance = o.clampDistance(o.TargetDistance)
	o.Distance = o.clampDistance(o.Distance)
}

func (o *Orbit) AddYaw(delta float64) {
	o.TargetYaw = common.NormalizeAxis(o.TargetYaw + delta)
}

func (o *Orbit) AddPitch(delta float64) {
	o.TargetPitch = o.clampPitch(o.TargetPitch + delta)
}

func (o *Orbit) AddZoom(delta float64) {
	o.TargetDistance = o.clampDistance(o.TargetDistance + delta)
}

func (o *Orbit) SetTargetYaw(yaw float64) {
	o.TargetYaw = common.NormalizeAxis(yaw)
}

func (o *Orbit) SetTargetPitch(pitch float64) {
	o.TargetPitch = o.clampPitch(pitch)
}

func (o *Orbit) SetTargetDistance(distance float64) {
	o.TargetDistance = o.clampDistance(distance)
}

// SetYaw moves both the current and target yaw.
func (o *Orbit) SetYaw(yaw float64) {
	o.SetTargetYaw(yaw)
	o.Yaw = o.TargetYaw
}

func (o *Orbit) SetPitch(pitch float64) {
	o.SetTargetPitch(pitch)
	o.Pitch = o.TargetPitch
}

func (o *Orbit) SetDistance(distance float64) {
	o.SetTargetDistance(distance)
	o.Distance = o.TargetDistance
}

// Tick advances each scalar toward its target with its own damping rate.
// Yaw follows the shortest arc.
func (o *Orbit) Tick(dt float64) {
	o.Yaw = common.DampAngle(o.Yaw, o.TargetYaw, o.settings.YawLagSpeed, dt)
	o.Pitch = o.clampPitch(common.Damp(o.Pitch, o.TargetPitch, o.settings.PitchLagSpeed, dt))
	o.Distance = o.clampDistance(common.Damp(o.Distance, o.TargetDistance, o.zoomLagSpeed(), dt))
}

// Snap jumps the current values onto the targets.
func (o *Orbit) Snap() {
	o.Yaw = o.TargetYaw
	o.Pitch = o.clampPitch(o.TargetPitch)
	o.Distance = o.clampDistance(o.TargetDistance)
}

func (o *Orbit) zoomLagSpeed() float64 {
	if o.settings.ZoomLagSpeed > 0 {
		return o.settings.ZoomLagSpeed
	}
	return o.settings.LocationLagSpeed
}

func (o *Orbit) clampPitch(pitch float64) float64 {
	return common.Clamp(pitch, o.settings.MinPitch, o.settings.MaxPitch)
}

func (o *Orbit) clampDistance(distance float64) float64 {
	return common.Clamp(distance, o.settings.MinDistance, o.settings.MaxDistance)
}
