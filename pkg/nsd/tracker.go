package nsd

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Tracker turns the results of repeated queries into Found and Lost
// events. Every entry stays alive for lostAfter after it was last seen.
// If it isn't seen again in the meantime a Lost event is emitted. Lost
// entries are forgotten on the next Lookup or after another lostAfter,
// whichever comes first.
//
// The tracker also serves as a cache of the most recent complete record
// of every instance, see Lookup.
type Tracker struct {
	clk       clock.Clock
	lostAfter time.Duration
	emit      func(BrowseEvent)

	lk      sync.Mutex
	stopped bool
	entries map[Identity]*trackedEntry
}

type trackedEntry struct {
	record ServiceRecord
	timer  *clock.Timer
	gen    uint64
	lost   bool
}

func NewTracker(clk clock.Clock, lostAfter time.Duration, emit func(BrowseEvent)) *Tracker {
	return &Tracker{
		clk:       clk,
		lostAfter: lostAfter,
		emit:      emit,
		entries:   map[Identity]*trackedEntry{},
	}
}

// Seen records that the given instance answered a query. Newly seen or
// previously lost instances are reported as Found.
func (t *Tracker) Seen(rec ServiceRecord) {
	t.lk.Lock()
	defer t.lk.Unlock()

	if t.stopped {
		return
	}

	id := rec.Identity()
	entry, found := t.entries[id]
	if !found {
		entry = &trackedEntry{}
		t.entries[id] = entry
	}

	if entry.timer != nil {
		entry.timer.Stop()
	}

	wasLost := entry.lost
	entry.gen += 1
	entry.lost = false
	entry.record = rec.Clone()

	gen := entry.gen
	entry.timer = t.clk.AfterFunc(t.lostAfter, func() {
		t.expire(id, gen)
	})

	if !found || wasLost {
		t.emit(Found{Record: rec.Clone()})
	}
}

func (t *Tracker) expire(id Identity, gen uint64) {
	t.lk.Lock()
	defer t.lk.Unlock()

	if t.stopped {
		return
	}

	entry, found := t.entries[id]
	if !found || entry.gen != gen || entry.lost {
		return
	}

	entry.lost = true
	entry.timer = t.clk.AfterFunc(t.lostAfter, func() {
		t.forget(id, gen)
	})

	t.emit(Lost{Record: entry.record.Clone()})
}

// forget drops a lost entry nobody looked up.
func (t *Tracker) forget(id Identity, gen uint64) {
	t.lk.Lock()
	defer t.lk.Unlock()

	if t.stopped {
		return
	}

	entry, found := t.entries[id]
	if !found || entry.gen != gen || !entry.lost {
		return
	}

	delete(t.entries, id)
}

// Lookup returns the last complete record seen for the given identity.
// Lost instances can be looked up exactly once more, so a Lost event can
// still be resolved, and are forgotten afterwards even if their record
// was incomplete.
func (t *Tracker) Lookup(id Identity) (ServiceRecord, bool) {
	t.lk.Lock()
	defer t.lk.Unlock()

	entry, found := t.entries[id]
	if !found {
		return ServiceRecord{}, false
	}

	if entry.lost {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(t.entries, id)
	}

	if !entry.record.Resolved() {
		return ServiceRecord{}, false
	}

	return entry.record.Clone(), true
}

// Len returns the number of instances that are currently considered alive.
func (t *Tracker) Len() int {
	t.lk.Lock()
	defer t.lk.Unlock()

	count := 0
	for _, entry := range t.entries {
		if !entry.lost {
			count += 1
		}
	}
	return count
}

// Stop cancels all expiry timers. No Lost events are emitted for
// instances that are still alive.
func (t *Tracker) Stop() {
	t.lk.Lock()
	defer t.lk.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true

	for _, entry := range t.entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
}
