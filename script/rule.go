package script

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const (
	varController = "controller"
	varUnit       = "unit"
	varSelectable = "selectable"
)

const DefaultTimeout = 50 * time.Millisecond

// Unit is the view of a unit a rule can read as the `unit` map.
type Unit struct {
	Name      string
	Team      string
	Owner     string
	Tags      []string
	Health    float64
	MaxHealth float64
}

func (u Unit) object() map[string]any {
	tags := make([]any, 0, len(u.Tags))
	for _, t := range u.Tags {
		tags = append(tags, t)
	}
	return map[string]any{
		"name":       u.Name,
		"team":       u.Team,
		"owner":      u.Owner,
		"tags":       tags,
		"health":     u.Health,
		"max_health": u.MaxHealth,
	}
}

// Rule is a compiled selectability predicate. Scripts read `controller` and
// `unit` and assign a bool to `selectable`, which starts out true:
//
//	selectable = unit.owner == controller
//
// Calls are serialised; one compiled program is shared by every caller.
type Rule struct {
	Timeout time.Duration

	name     string
	mu       sync.Mutex
	compiled *tengo.Compiled
}

func Compile(name string, src []byte) (*Rule, error) {
	s := tengo.NewScript(src)
	_ = s.Add(varController, "")
	_ = s.Add(varUnit, map[string]any{})
	_ = s.Add(varSelectable, true)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Rule{Timeout: DefaultTimeout, name: name, compiled: compiled}, nil
}

func (r *Rule) Name() string {
	return r.name
}

// Selectable runs the rule for one controller/unit pair.
func (r *Rule) Selectable(controller string, u Unit) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.compiled.Set(varController, controller); err != nil {
		return false, err
	}
	if err := r.compiled.Set(varUnit, u.object()); err != nil {
		return false, err
	}
	if err := r.compiled.Set(varSelectable, true); err != nil {
		return false, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := r.compiled.RunContext(ctx); err != nil {
		return false, fmt.Errorf("script: run %s: %w", r.name, err)
	}

	v := r.compiled.Get(varSelectable)
	if v.ValueType() != "bool" {
		return false, fmt.Errorf("script: %s: selectable must be a bool, got %s", r.name, v.ValueType())
	}
	return v.Bool(), nil
}
