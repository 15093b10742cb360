package catalog

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/events"
	"github.com/dennis-tra/mdnssearch/pkg/metrics"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "catalog")

// Snapshot is a view of the catalog at one version. Version increases
// with every published change. Every snapshot owns its records, so
// receivers may modify them without affecting the catalog or other
// observers.
type Snapshot struct {
	Version uint64
	Records []nsd.ServiceRecord
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	records := make([]nsd.ServiceRecord, len(s.Records))
	for i, rec := range s.Records {
		records[i] = rec.Clone()
	}
	return Snapshot{
		Version: s.Version,
		Records: records,
	}
}

func (s Snapshot) Len() int {
	return len(s.Records)
}

// Find returns the record with the given identity.
func (s Snapshot) Find(id nsd.Identity) (nsd.ServiceRecord, bool) {
	for _, rec := range s.Records {
		if rec.Identity() == id {
			return rec, true
		}
	}
	return nsd.ServiceRecord{}, false
}

// Catalog is the deduplicated collection of resolved services. No two
// records share name and type. Records keep their position when other
// records are added or removed.
type Catalog struct {
	lk      sync.Mutex
	records []nsd.ServiceRecord
	version uint64

	emitter *events.Emitter[Snapshot]
}

func New() *Catalog {
	return &Catalog{
		records: []nsd.ServiceRecord{},
		emitter: events.NewEmitter[Snapshot](events.DefaultBuffer).WithCopy(Snapshot.Clone),
	}
}

// Add appends the record unless a record with the same identity is
// already present. It reports whether the catalog changed.
func (c *Catalog) Add(rec nsd.ServiceRecord) bool {
	c.lk.Lock()
	defer c.lk.Unlock()

	logEntry := log.WithField("id", rec.Identity().String())

	if c.indexOf(rec.Identity()) >= 0 {
		logEntry.Debugln("Service already in catalog")
		return false
	}

	c.records = append(c.records, rec.Clone())

	logEntry.WithField("endpoint", rec.Endpoint()).Infoln("Added service to catalog")
	c.publish("add")

	return true
}

// Remove removes every record sharing the identity of rec. Host and
// port of rec are irrelevant. It reports whether the catalog changed.
func (c *Catalog) Remove(rec nsd.ServiceRecord) bool {
	c.lk.Lock()
	defer c.lk.Unlock()

	id := rec.Identity()
	logEntry := log.WithField("id", id.String())

	if c.indexOf(id) < 0 {
		logEntry.Debugln("Service not in catalog")
		return false
	}

	records := c.records[:0]
	for _, r := range c.records {
		if r.Identity() != id {
			records = append(records, r)
		}
	}
	clear(c.records[len(records):])
	c.records = records

	logEntry.Infoln("Removed service from catalog")
	c.publish("remove")

	return true
}

// Clear empties the catalog and always publishes a snapshot.
func (c *Catalog) Clear() {
	c.lk.Lock()
	defer c.lk.Unlock()

	log.WithField("size", len(c.records)).Infoln("Clearing catalog")

	c.records = []nsd.ServiceRecord{}
	c.publish("clear")
}

// Snapshot returns the current content of the catalog.
func (c *Catalog) Snapshot() Snapshot {
	c.lk.Lock()
	defer c.lk.Unlock()

	return c.snapshot()
}

// Subscribe returns a subscription that first receives the current
// snapshot and then every subsequent one. Subscribers that fall behind
// skip stale snapshots.
func (c *Catalog) Subscribe() *events.Subscription[Snapshot] {
	c.lk.Lock()
	defer c.lk.Unlock()

	return c.emitter.SubscribeWith(c.snapshot())
}

// Close ends all subscriptions.
func (c *Catalog) Close() {
	c.emitter.Close()
}

// snapshot returns a copy of the current content. The lock must be
// held.
func (c *Catalog) snapshot() Snapshot {
	return c.view().Clone()
}

// view shares the record slice of the catalog. It must not leave the
// package without being cloned.
func (c *Catalog) view() Snapshot {
	return Snapshot{
		Version: c.version,
		Records: c.records,
	}
}

// publish must be called with the lock held, so observers see snapshots
// in mutation order and never a half applied change.
func (c *Catalog) publish(op string) {
	c.version += 1

	metrics.CatalogMutations.WithLabelValues(op).Inc()
	metrics.CatalogRecords.Set(float64(len(c.records)))

	// the emitter clones the view for every subscriber
	c.emitter.Emit(c.view())
}

func (c *Catalog) indexOf(id nsd.Identity) int {
	for i, r := range c.records {
		if r.Identity() == id {
			return i
		}
	}
	return -1
}
