package storage

import "container/list"

// clockEntry is one (frame, epoch) pair queued for victim consideration.
type clockEntry struct {
	frame FrameID
	epoch uint64
}

// ClockReplacer is a second-chance/clock variant implemented as an
// epoch-stamped FIFO rather than a circular array, so Victim never has to
// scan the whole pool: stale entries are skipped lazily as they surface at
// the front of the queue instead of being hunted down eagerly.
//
// A frame is eligible once Unpin has recorded its current epoch; Pin
// invalidates that epoch without touching the queue, so a pinned frame's
// queued entry becomes stale and is skipped the next time it's dequeued.
type ClockReplacer struct {
	queue  *list.List // of *clockEntry, front = oldest
	latest map[FrameID]uint64
	epoch  uint64
}

// NewClockReplacer returns an empty ClockReplacer sized for capacity frames.
// capacity is advisory only (container/list grows as needed).
func NewClockReplacer(capacity int) *ClockReplacer {
	return &ClockReplacer{
		queue:  list.New(),
		latest: make(map[FrameID]uint64, capacity),
	}
}

// Unpin records frame as eligible. If the frame is already eligible, this is
// a no-op — the first unpin "sticks" until a victim or pin clears it; a
// re-unpin does not reset the clock.
func (c *ClockReplacer) Unpin(frame FrameID) {
	if _, ok := c.latest[frame]; ok {
		return
	}
	c.latest[frame] = c.epoch
	c.queue.PushBack(&clockEntry{frame: frame, epoch: c.epoch})
	c.epoch++
}

// Pin removes frame from eligibility. Any queued entry for it becomes stale
// and is skipped lazily by Victim.
func (c *ClockReplacer) Pin(frame FrameID) {
	delete(c.latest, frame)
}

// Victim pops queue entries until it finds one whose epoch still matches the
// frame's latest recorded epoch, returning that frame. Stale entries (the
// frame was since pinned, or unpinned again after this entry was queued) are
// discarded along the way. Returns (0, false) if the queue drains with
// nothing live.
func (c *ClockReplacer) Victim() (FrameID, bool) {
	for e := c.queue.Front(); e != nil; e = c.queue.Front() {
		c.queue.Remove(e)
		entry := e.Value.(*clockEntry)
		if latest, ok := c.latest[entry.frame]; ok && latest == entry.epoch {
			delete(c.latest, entry.frame)
			return entry.frame, true
		}
	}
	return 0, false
}

// Size returns the number of currently-eligible frames.
func (c *ClockReplacer) Size() int {
	return len(c.latest)
}
