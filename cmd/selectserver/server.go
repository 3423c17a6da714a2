package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/entity"
	"github.com/milk9111/ringworld/ecs/system"
	"github.com/milk9111/ringworld/netrpc"
	"github.com/milk9111/ringworld/physics"
	"github.com/milk9111/ringworld/prefabs"
	"github.com/milk9111/ringworld/selection"
)

const pruneEvery = 30

// selectServer owns the authoritative world. Ticks and selection requests
// share mu, so a request never sees a half-stepped world.
type selectServer struct {
	mu        sync.Mutex
	world     *ecs.World
	scheduler *ecs.Scheduler
	service   *selection.Service
	rpc       *netrpc.Server
	level     entity.Level
	logger    *log.Logger
}

func newSelectServer(levelName string, logger *log.Logger) (*selectServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	effects, err := prefabs.LoadEffects()
	if err != nil {
		logger.Printf("selectserver: effects: %v", err)
	}
	spec, err := prefabs.LoadLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("selectserver: %w", err)
	}

	ph := physics.NewWorld()
	s := &selectServer{world: ecs.NewWorld(), logger: logger}
	ctx := &entity.Context{Physics: ph, Effects: effects, Authority: true}
	s.level, err = entity.LoadLevel(s.world, spec, ctx, false)
	if err != nil {
		return nil, fmt.Errorf("selectserver: %w", err)
	}
	s.service, err = entity.NewSelectionService(s.world, spec.Selection)
	if err != nil {
		return nil, fmt.Errorf("selectserver: %w", err)
	}
	s.scheduler = ecs.NewScheduler(
		system.NewPlatformSystem(ph),
		system.NewVitalitySystem(),
	)
	s.rpc = netrpc.NewServer(s.service, netrpc.ServerConfig{Logger: logger, Locker: &s.mu})
	logger.Printf("selectserver: level %s with %d units", spec.Name, len(s.level.Units))
	return s, nil
}

func (s *selectServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.rpc.Handle)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *selectServer) Step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Step(s.world, dt)
	s.world.Events().Drain()
	if s.world.Frame()%pruneEvery == 0 {
		if n := s.service.Prune(); n > 0 {
			s.logger.Printf("selectserver: pruned %d stale handles", n)
		}
	}
}

// Run ticks the world at rate until ctx is done.
func (s *selectServer) Run(ctx context.Context, rate int) error {
	step := time.Second / time.Duration(rate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Step(step.Seconds())
		}
	}
}
