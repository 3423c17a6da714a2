package selection

import (
	"reflect"
	"testing"
)

const (
	hA Handle = iota + 1
	hB
	hC
)

func setOf(handles ...Handle) *Set {
	s := &Set{}
	s.Apply(handles, ModeAdd)
	return s
}

func TestSetApply(t *testing.T) {
	tests := []struct {
		name       string
		old        []Handle
		candidates []Handle
		mode       Mode
		deselected []Handle
		selected   []Handle
		after      []Handle
	}{
		{
			name:       "replace",
			old:        []Handle{hA, hB},
			candidates: []Handle{hB, hC},
			mode:       ModeReplace,
			deselected: []Handle{hA},
			selected:   []Handle{hC},
			after:      []Handle{hB, hC},
		},
		{
			name:       "remove_never_adds",
			old:        []Handle{hA, hB},
			candidates: []Handle{hA, hC},
			mode:       ModeRemove,
			deselected: []Handle{hA},
			after:      []Handle{hB},
		},
		{
			name:       "add_is_union",
			old:        []Handle{hA},
			candidates: []Handle{hA, hB},
			mode:       ModeAdd,
			selected:   []Handle{hB},
			after:      []Handle{hA, hB},
		},
		{
			name:       "replace_with_nothing_clears",
			old:        []Handle{hA, hB},
			mode:       ModeReplace,
			deselected: []Handle{hA, hB},
		},
		{
			name:       "duplicate_candidates_notify_once",
			candidates: []Handle{hC, hC, hC},
			mode:       ModeReplace,
			selected:   []Handle{hC},
			after:      []Handle{hC},
		},
		{
			name:       "replace_with_same_set_is_silent",
			old:        []Handle{hA, hB},
			candidates: []Handle{hB, hA},
			mode:       ModeReplace,
			after:      []Handle{hB, hA},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setOf(tc.old...)
			d := s.Apply(tc.candidates, tc.mode)
			if !reflect.DeepEqual(d.Deselected, tc.deselected) {
				t.Fatalf("deselected %v, want %v", d.Deselected, tc.deselected)
			}
			if !reflect.DeepEqual(d.Selected, tc.selected) {
				t.Fatalf("selected %v, want %v", d.Selected, tc.selected)
			}
			if got := s.Handles(); !reflect.DeepEqual(got, tc.after) {
				t.Fatalf("set %v, want %v", got, tc.after)
			}
		})
	}
}

func TestModeFor(t *testing.T) {
	cases := []struct {
		add, remove bool
		want        Mode
	}{
		{false, false, ModeReplace},
		{true, false, ModeAdd},
		{false, true, ModeRemove},
		{true, true, ModeRemove},
	}
	for _, c := range cases {
		if got := ModeFor(c.add, c.remove); got != c.want {
			t.Fatalf("ModeFor(%t, %t) = %s, want %s", c.add, c.remove, got, c.want)
		}
	}
}

func TestSetPrune(t *testing.T) {
	s := setOf(hA, hB, hC)
	dead := s.Prune(func(h Handle) bool { return h != hB })
	if !reflect.DeepEqual(dead, []Handle{hB}) {
		t.Fatalf("pruned %v", dead)
	}
	if s.Contains(hB) || s.Len() != 2 {
		t.Fatalf("unexpected set %v", s.Handles())
	}
}
