package camera

import "github.com/milk9111/ringworld/common"

// Resolver turns a pawn pose and the previous State into the next State.
// It holds no per-frame data of its own.
type Resolver struct {
	Settings Settings
	Sweeper  Sweeper
}

// Resolve advances prev by dt. With allowLag false, or after a teleport,
// every lag filter snaps to its target.
func (r *Resolver) Resolve(prev State, pose Pose, dt float64, allowLag bool) State {
	s := prev
	if dt < 0 {
		dt = 0
	}
	if s.RotationRelative == (common.Quat{}) {
		s.RotationRelative = common.IdentityQuat
	}

	if !s.initialized || r.teleported(s, pose) {
		allowLag = false
	}
	if s.initialized && s.resolvedMode != s.Mode && r.Settings.ResetTraceDistanceOnModeSwitch {
		s.TraceDistanceRatio = 1
	}

	s.reanchor(pose.Base)

	switch s.Mode {
	case ViewModeFirstPerson:
		r.resolveFirstPerson(&s, pose)
	case ViewModeTopDown:
		r.resolveTopDown(&s, pose, dt, allowLag)
	default:
		r.resolveThirdPerson(&s, pose, dt, allowLag)
	}

	s.captureBase(pose.Base)
	s.LastActorLocation = pose.Location
	s.resolvedMode = s.Mode
	s.initialized = true
	return s
}

func (r *Resolver) teleported(s State, pose Pose) bool {
	threshold := r.Settings.TeleportDistanceThreshold
	if threshold <= 0 {
		return false
	}
	return pose.Location.Distance(s.LastActorLocation) > threshold
}

func (r *Resolver) resolveFirstPerson(s *State, pose Pose) {
	location, ok := pose.Socket(r.Settings.FirstPerson.CameraSocket)
	if !ok {
		location = pose.Location
	}

	s.PivotTarget = thirdPersonPivot(pose, r.Settings.ThirdPerson)
	s.PivotLag = s.PivotTarget
	s.PivotLocation = s.PivotTarget

	s.CameraTargetRotation = pose.ViewRotation
	s.CameraRotation = pose.ViewRotation
	s.CameraLocation = location
	s.TraceStart = location
	s.TraceBlocked = false
	s.FieldOfView = ClampFieldOfView(s.baseFieldOfView(r.Settings.FirstPerson.FieldOfView))
}

func (r *Resolver) resolveThirdPerson(s *State, pose Pose, dt float64, allowLag bool) {
	tp := r.Settings.ThirdPerson

	s.CameraTargetRotation = pose.ViewRotation
	s.CameraRotation = dampRotator(s.CameraRotation, pose.ViewRotation, tp.RotationLagSpeed, dt, allowLag)

	s.PivotTarget = thirdPersonPivot(pose, tp)
	s.PivotLag = dampInYawFrame(s.PivotLag, s.PivotTarget, s.CameraTargetRotation.Yaw, tp.LocationLagSpeed, dt, allowLag)
	yaw := common.Rotator{Yaw: s.CameraRotation.Yaw}.Quat()
	s.PivotLocation = s.PivotLag.Add(yaw.Rotate(tp.PivotOffset))

	offset := tp.CameraOffset
	if !s.RightShoulder {
		offset.Y = -offset.Y
	}
	desired := s.PivotLocation.Add(s.CameraRotation.Quat().Rotate(offset))

	s.applyTrace(r.Sweeper, r.thirdPersonTraceStart(s, pose), desired, tp.Trace, dt, allowLag)

	fov := s.baseFieldOfView(tp.FieldOfView)
	s.FieldOfView = ClampFieldOfView(common.Lerp(fov+tp.FieldOfViewTraceOffset, fov, s.TraceDistanceRatio))
}

// thirdPersonTraceStart prefers the shoulder socket on the active side and
// falls back to the pivot target plus the override offset.
func (r *Resolver) thirdPersonTraceStart(s *State, pose Pose) common.Vec3 {
	tp := r.Settings.ThirdPerson
	socket := tp.TraceShoulderLeftSocket
	if s.RightShoulder {
		socket = tp.TraceShoulderRightSocket
	}
	if start, ok := pose.Socket(socket); ok {
		return start
	}
	yaw := common.Rotator{Yaw: pose.Rotation.Yaw}.Quat()
	return s.PivotTarget.Add(yaw.Rotate(tp.TraceOverrideOffset))
}

func (r *Resolver) resolveTopDown(s *State, pose Pose, dt float64, allowLag bool) {
	td := r.Settings.TopDown

	s.TopDown.SetSettings(td)
	if allowLag {
		s.TopDown.Tick(dt)
	} else {
		s.TopDown.Snap()
	}

	yaw := s.TopDown.Yaw
	if !td.FixedWorldYaw {
		yaw += pose.Rotation.Yaw
	}
	s.CameraTargetRotation = common.Rotator{Pitch: s.TopDown.Pitch, Yaw: common.NormalizeAxis(yaw)}
	s.CameraRotation = s.CameraTargetRotation

	s.PivotTarget = pose.Location.Add(td.PivotOffset)
	speed := common.Vec3{X: td.LocationLagSpeed, Y: td.LocationLagSpeed, Z: td.LocationLagSpeed}
	if allowLag {
		s.PivotLag = common.DampVec3(s.PivotLag, s.PivotTarget, speed, dt)
	} else {
		s.PivotLag = s.PivotTarget
	}
	s.PivotLocation = s.PivotLag

	desired := s.PivotLocation.Sub(s.CameraRotation.Forward().Scale(s.TopDown.Distance))
	s.applyTrace(r.Sweeper, s.PivotLocation, desired, td.Trace, dt, allowLag)

	s.FieldOfView = ClampFieldOfView(s.baseFieldOfView(td.FieldOfView))
}

func (s *State) applyTrace(sweeper Sweeper, start, desired common.Vec3, trace TraceSettings, dt float64, allowLag bool) {
	result := Trace(sweeper, start, desired, trace.Radius, trace.Channel)

	s.TraceStart = start
	s.TraceBlocked = result.BlockingHit
	s.TraceDistanceRatio = smoothTraceRatio(s.TraceDistanceRatio, result.Ratio(start.Distance(desired)), trace, dt, allowLag)
	s.CameraLocation = common.LerpVec3(start, desired, s.TraceDistanceRatio)
}

func (s *State) baseFieldOfView(modeFOV float64) float64 {
	if s.Overrides.FieldOfViewOverridden {
		return s.Overrides.FieldOfView
	}
	return modeFOV
}

// reanchor carries the lagged pivot and camera rotation along with a moving base.
func (s *State) reanchor(base *MovementBase) {
	if base == nil || !s.HasBase || base.ID != s.BaseID {
		return
	}
	s.PivotLag = base.transform().TransformPosition(s.PivotLagRelative)
	s.CameraRotation = base.Rotation.Mul(s.RotationRelative).Normalize().Rotator()
}

func (s *State) captureBase(base *MovementBase) {
	if base == nil {
		s.HasBase = false
		s.BaseID = 0
		s.PivotLagRelative = common.Vec3{}
		s.RotationRelative = common.IdentityQuat
		return
	}
	s.HasBase = true
	s.BaseID = base.ID
	s.PivotLagRelative = base.transform().InverseTransformPosition(s.PivotLag)
	s.RotationRelative = base.Rotation.Inverse().Mul(s.CameraRotation.Quat()).Normalize()
}

func thirdPersonPivot(pose Pose, tp ThirdPersonSettings) common.Vec3 {
	first, okFirst := pose.Socket(tp.PivotFirstSocket)
	second, okSecond := pose.Socket(tp.PivotSecondSocket)
	switch {
	case okFirst && okSecond:
		return common.LerpVec3(first, second, 0.5)
	case okFirst:
		return first
	case okSecond:
		return second
	default:
		return pose.Location
	}
}

// dampInYawFrame lags each axis of the pivot in the frame of the given yaw so
// forward, lateral and vertical lag are tuned independently.
func dampInYawFrame(current, target common.Vec3, yaw float64, speed common.Vec3, dt float64, allowLag bool) common.Vec3 {
	if !allowLag {
		return target
	}
	frame := common.Rotator{Yaw: yaw}.Quat()
	local := common.DampVec3(frame.Unrotate(current), frame.Unrotate(target), speed, dt)
	return frame.Rotate(local)
}

func dampRotator(current, target, speed common.Rotator, dt float64, allowLag bool) common.Rotator {
	if !allowLag {
		return target.Normalize()
	}
	return common.Rotator{
		Pitch: common.DampAngle(current.Pitch, target.Pitch, speed.Pitch, dt),
		Yaw:   common.DampAngle(current.Yaw, target.Yaw, speed.Yaw, dt),
		Roll:  common.DampAngle(current.Roll, target.Roll, speed.Roll, dt),
	}
}
