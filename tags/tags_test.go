package tags

import "testing"

func TestContainerMatching(t *testing.T) {
	c := Parse("Unit.Worker", "Team.Blue")

	tests := []struct {
		name string
		tag  Tag
		want bool
	}{
		{"exact", "Unit.Worker", true},
		{"parent", "Unit", true},
		{"sibling", "Unit.Soldier", false},
		{"prefix_without_dot", "Uni", false},
		{"child_not_owned", "Unit.Worker.Miner", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.HasTag(tc.tag); got != tc.want {
				t.Fatalf("HasTag(%q) = %t, want %t", tc.tag, got, tc.want)
			}
		})
	}
}

func TestContainerHasAllAndAny(t *testing.T) {
	c := Parse("Unit.Worker", "Team.Blue")

	if !c.HasAll(Parse("Unit", "Team.Blue")) {
		t.Fatalf("expected HasAll to pass")
	}
	if c.HasAll(Parse("Unit", "Team.Red")) {
		t.Fatalf("expected HasAll to fail on Team.Red")
	}
	if !c.HasAll(Container{}) {
		t.Fatalf("empty requirement should pass")
	}
	if !c.HasAny(Parse("Team.Red", "Unit")) {
		t.Fatalf("expected HasAny to pass")
	}
	if c.HasAny(Container{}) {
		t.Fatalf("HasAny of nothing should fail")
	}
}

func TestParseDropsInvalid(t *testing.T) {
	c := Parse("", ".Bad", "Bad.", "Also..Bad", " Good ")
	if c.Len() != 1 || !c.HasTagExact("Good") {
		t.Fatalf("unexpected container %v", c)
	}
}

func TestNames(t *testing.T) {
	n := Names{"Enemy", "Flying"}
	if !n.HasAll([]string{"Enemy"}) || n.HasAll([]string{"Enemy", "Boss"}) {
		t.Fatalf("unexpected HasAll result")
	}
	if !n.HasAll(nil) {
		t.Fatalf("nil requirement should pass")
	}
}
