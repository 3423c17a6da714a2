package component

import "github.com/milk9111/ringworld/common"

// Transform places an entity in the world. Location is the capsule centre.
type Transform struct {
	Location common.Vec3
	Rotation common.Rotator
}

var TransformComponent = NewComponent[Transform]()

// Sockets are named attachment points relative to the transform, rotated by
// its yaw.
type Sockets struct {
	Local map[string]common.Vec3
}

func (s *Sockets) World(t Transform) map[string]common.Vec3 {
	out := make(map[string]common.Vec3, len(s.Local))
	rot := t.Rotation.YawOnly().Quat()
	for name, offset := range s.Local {
		out[name] = t.Location.Add(rot.Rotate(offset))
	}
	return out
}

var SocketsComponent = NewComponent[Sockets]()
