package ecs

// Scheduler runs systems in registration order at a fixed step.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Step advances the world by dt and runs every system once. Events pushed
// during the previous step are dropped unless a system drained them.
func (s *Scheduler) Step(w *World, dt float64) {
	w.events.flush()
	w.dt = dt
	w.frame++
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
