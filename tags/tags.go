// Package tags implements hierarchical gameplay tags ("Unit.Worker" matches
// "Unit") and flat actor name tags.
package tags

import (
	"sort"
	"strings"
)

// Tag is a dot-separated hierarchical name.
type Tag string

func (t Tag) Valid() bool {
	s := string(t)
	return s != "" && !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}

// Matches reports whether t is other or a descendant of other.
func (t Tag) Matches(other Tag) bool {
	if t == other {
		return true
	}
	return strings.HasPrefix(string(t), string(other)+".")
}

func (t Tag) Parent() (Tag, bool) {
	i := strings.LastIndexByte(string(t), '.')
	if i < 0 {
		return "", false
	}
	return t[:i], true
}

// Container is an unordered set of gameplay tags.
type Container struct {
	tags map[Tag]struct{}
}

func NewContainer(tags ...Tag) Container {
	var c Container
	for _, t := range tags {
		c.Add(t)
	}
	return c
}

// Parse builds a container from strings, dropping invalid names.
func Parse(names ...string) Container {
	var c Container
	for _, n := range names {
		c.Add(Tag(strings.TrimSpace(n)))
	}
	return c
}

func (c *Container) Add(t Tag) {
	if !t.Valid() {
		return
	}
	if c.tags == nil {
		c.tags = make(map[Tag]struct{})
	}
	c.tags[t] = struct{}{}
}

func (c *Container) Remove(t Tag) {
	delete(c.tags, t)
}

func (c Container) Len() int {
	return len(c.tags)
}

func (c Container) IsEmpty() bool {
	return len(c.tags) == 0
}

// HasTag reports whether any tag in c matches t, parents included.
func (c Container) HasTag(t Tag) bool {
	if _, ok := c.tags[t]; ok {
		return true
	}
	for have := range c.tags {
		if have.Matches(t) {
			return true
		}
	}
	return false
}

func (c Container) HasTagExact(t Tag) bool {
	_, ok := c.tags[t]
	return ok
}

// HasAll is true when every tag in required is matched. An empty
// requirement is always satisfied.
func (c Container) HasAll(required Container) bool {
	for t := range required.tags {
		if !c.HasTag(t) {
			return false
		}
	}
	return true
}

// HasAny is true when at least one tag in other is matched.
func (c Container) HasAny(other Container) bool {
	for t := range other.tags {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// Tags returns the members in sorted order.
func (c Container) Tags() []Tag {
	out := make([]Tag, 0, len(c.tags))
	for t := range c.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c Container) Strings() []string {
	tags := c.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func (c Container) String() string {
	return strings.Join(c.Strings(), ",")
}

// Names is a set of flat actor tags compared by exact name.
type Names []string

// HasAll reports whether every required name is present.
func (n Names) HasAll(required []string) bool {
	for _, r := range required {
		if !n.Has(r) {
			return false
		}
	}
	return true
}

func (n Names) Has(name string) bool {
	for _, have := range n {
		if have == name {
			return true
		}
	}
	return false
}
