package ecs

type EventType string

const (
	EventSelected   EventType = "selected"
	EventDeselected EventType = "deselected"
	EventDied       EventType = "died"
	EventViewMode   EventType = "view_mode"
)

// Event is a frame-scoped notification. Data depends on Type.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO that systems push to and later systems drain.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the queued events of one type without removing anything.
func (q *EventQueue) Peek(t EventType) []Event {
	var out []Event
	for _, e := range q.items {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	q.items = nil
}
