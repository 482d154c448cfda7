package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/telemetry"
)

// PartnerMark asks the commit step to flag Partner as mating with From.
type PartnerMark struct {
	Partner uint64
	From    uint64
}

// Changes collects the structural edits produced while processing one tick.
// Nothing in it touches the world until the tick commits.
type Changes struct {
	removed     map[uint64]struct{}
	removeOrder []uint64
	added       []components.Entity
	marks       []PartnerMark
	events      []telemetry.Event
}

// NewChanges creates an empty buffer.
func NewChanges() *Changes {
	return &Changes{removed: make(map[uint64]struct{})}
}

// Remove queues id for removal. Queuing the same id twice is a no-op and
// returns false.
func (c *Changes) Remove(id uint64) bool {
	if _, ok := c.removed[id]; ok {
		return false
	}
	c.removed[id] = struct{}{}
	c.removeOrder = append(c.removeOrder, id)
	return true
}

// Removed reports whether id is queued for removal.
func (c *Changes) Removed(id uint64) bool {
	_, ok := c.removed[id]
	return ok
}

// Add queues a new entity.
func (c *Changes) Add(e components.Entity) {
	c.added = append(c.added, e)
}

// Mark queues a partner mark.
func (c *Changes) Mark(m PartnerMark) {
	c.marks = append(c.marks, m)
}

// Record queues a telemetry event.
func (c *Changes) Record(ev telemetry.Event) {
	c.events = append(c.events, ev)
}

// Removals returns queued removals in the order they were made.
func (c *Changes) Removals() []uint64 { return c.removeOrder }

// Additions returns queued additions.
func (c *Changes) Additions() []components.Entity { return c.added }

// Marks returns queued partner marks.
func (c *Changes) Marks() []PartnerMark { return c.marks }

// Events returns queued telemetry events.
func (c *Changes) Events() []telemetry.Event { return c.events }

// Reset empties the buffer for reuse.
func (c *Changes) Reset() {
	clear(c.removed)
	c.removeOrder = c.removeOrder[:0]
	c.added = c.added[:0]
	c.marks = c.marks[:0]
	c.events = c.events[:0]
}
