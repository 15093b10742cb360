package catalog

import (
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennis-tra/mdnssearch/pkg/events"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

func record(name string, typ nsd.ServiceType, host string, port int) nsd.ServiceRecord {
	return nsd.ServiceRecord{
		Name: name,
		Type: string(typ),
		Host: net.ParseIP(host),
		Port: port,
	}
}

func next(t *testing.T, sub *events.Subscription[Snapshot]) Snapshot {
	select {
	case s, more := <-sub.Events():
		require.True(t, more)
		return s
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for snapshot")
		return Snapshot{}
	}
}

func assertQuiet(t *testing.T, sub *events.Subscription[Snapshot]) {
	select {
	case s := <-sub.Events():
		assert.Failf(t, "unexpected snapshot", "%#v", s)
	default:
	}
}

func TestCatalog_Add_idempotent(t *testing.T) {
	c := New()

	r := record("Living Room", nsd.AirPlay, "192.0.2.5", 7000)
	assert.True(t, c.Add(r))
	assert.False(t, c.Add(r))

	// a re-found service with a new address is still the same service
	assert.False(t, c.Add(record("Living Room", nsd.AirPlay, "192.0.2.9", 7001)))

	snap := c.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "192.0.2.5:7000", snap.Records[0].Endpoint())
}

func TestCatalog_Remove_ignoresEndpoint(t *testing.T) {
	c := New()

	c.Add(record("Living Room", nsd.AirPlay, "192.0.2.5", 7000))
	assert.True(t, c.Remove(record("Living Room", nsd.AirPlay, "198.51.100.1", 1)))
	assert.Equal(t, 0, c.Snapshot().Len())

	assert.False(t, c.Remove(record("Living Room", nsd.AirPlay, "192.0.2.5", 7000)))
}

func TestCatalog_Remove_distinguishesType(t *testing.T) {
	c := New()

	c.Add(record("Living Room", nsd.AirPlay, "192.0.2.5", 7000))
	c.Add(record("Living Room", nsd.RAOP, "192.0.2.5", 7000))
	require.Equal(t, 2, c.Snapshot().Len())

	c.Remove(record("Living Room", nsd.RAOP, "", 0))

	snap := c.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, string(nsd.AirPlay), snap.Records[0].Type)
}

func TestCatalog_stableOrder(t *testing.T) {
	c := New()

	c.Add(record("c", nsd.HTTP, "192.0.2.3", 80))
	c.Add(record("a", nsd.HTTP, "192.0.2.1", 80))
	c.Add(record("b", nsd.HTTP, "192.0.2.2", 80))
	c.Remove(record("a", nsd.HTTP, "", 0))
	c.Add(record("d", nsd.HTTP, "192.0.2.4", 80))

	var names []string
	for _, r := range c.Snapshot().Records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"c", "b", "d"}, names)
}

func TestCatalog_Subscribe_publishesOnlyOnChange(t *testing.T) {
	c := New()
	sub := c.Subscribe()

	initial := next(t, sub)
	assert.Equal(t, uint64(0), initial.Version)
	assert.Equal(t, 0, initial.Len())

	r := record("Living Room", nsd.AirPlay, "192.0.2.5", 7000)
	c.Add(r)
	added := next(t, sub)
	assert.Equal(t, uint64(1), added.Version)
	assert.Equal(t, 1, added.Len())

	c.Add(r)
	c.Remove(record("Kitchen", nsd.AirPlay, "", 0))
	assertQuiet(t, sub)

	c.Remove(r)
	removed := next(t, sub)
	assert.Equal(t, uint64(2), removed.Version)
	assert.Equal(t, 0, removed.Len())
}

func TestCatalog_Clear_alwaysPublishes(t *testing.T) {
	c := New()
	sub := c.Subscribe()
	next(t, sub)

	c.Clear()
	assert.Equal(t, 0, next(t, sub).Len())

	c.Add(record("a", nsd.HTTP, "192.0.2.1", 80))
	c.Add(record("b", nsd.HTTP, "192.0.2.2", 80))
	next(t, sub)
	next(t, sub)

	c.Clear()
	assert.Equal(t, 0, next(t, sub).Len())
	assert.Equal(t, 0, c.Snapshot().Len())
}

func TestCatalog_snapshotsAreImmutable(t *testing.T) {
	c := New()
	c.Add(record("a", nsd.HTTP, "192.0.2.1", 80))

	before := c.Snapshot()

	c.Add(record("b", nsd.HTTP, "192.0.2.2", 80))
	c.Remove(record("a", nsd.HTTP, "", 0))

	require.Equal(t, 1, before.Len())
	assert.Equal(t, "a", before.Records[0].Name)

	after := c.Snapshot()
	require.Equal(t, 1, after.Len())
	assert.Equal(t, "b", after.Records[0].Name)
}

func TestCatalog_snapshotWritesDoNotLeak(t *testing.T) {
	c := New()
	sub := c.Subscribe()
	other := c.Subscribe()
	next(t, sub)
	next(t, other)

	rec := record("a", nsd.HTTP, "192.0.2.1", 80)
	rec.Attributes = map[string][]byte{"path": []byte("/")}
	require.True(t, c.Add(rec))

	snap := next(t, sub)
	require.Equal(t, 1, snap.Len())
	snap.Records[0].Name = "b"
	snap.Records[0].Attributes["path"][0] = 'x'

	got := c.Snapshot()
	got.Records[0].Port = 8080

	// the catalog still knows the record by its original identity
	assert.False(t, c.Add(rec))
	assert.True(t, c.Remove(rec))
	assert.Equal(t, 0, c.Snapshot().Len())

	otherSnap := next(t, other)
	require.Equal(t, 1, otherSnap.Len())
	assert.Equal(t, "a", otherSnap.Records[0].Name)
	assert.Equal(t, "/", string(otherSnap.Records[0].Attributes["path"]))
	assert.Equal(t, 80, otherSnap.Records[0].Port)
}

func TestCatalog_Add_copiesRecord(t *testing.T) {
	c := New()

	r := record("a", nsd.HTTP, "192.0.2.1", 80)
	r.Attributes = map[string][]byte{"path": []byte("/")}
	c.Add(r)

	r.Attributes["path"][0] = 'x'
	r.Attributes["other"] = nil

	stored := c.Snapshot().Records[0]
	assert.Equal(t, "/", string(stored.Attributes["path"]))
	assert.NotContains(t, stored.Attributes, "other")
}

func TestCatalog_concurrentMutations(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				// all goroutines race on the same ten identities
				r := record(fmt.Sprintf("svc-%d", j%10), nsd.HTTP, "192.0.2.1", 80)
				c.Add(r)
				if i%2 == 0 {
					c.Remove(r)
				}
			}
		}(i)
	}
	wg.Wait()

	seen := map[nsd.Identity]bool{}
	for _, r := range c.Snapshot().Records {
		assert.False(t, seen[r.Identity()], "duplicate identity %s", r.Identity())
		seen[r.Identity()] = true
	}
}

func TestCatalog_Close(t *testing.T) {
	c := New()
	sub := c.Subscribe()
	next(t, sub)

	c.Close()
	_, more := <-sub.Events()
	assert.False(t, more)

	// mutations still work after the subscriptions are gone
	assert.True(t, c.Add(record("a", nsd.HTTP, "192.0.2.1", 80)))
}

func TestSnapshot_Find(t *testing.T) {
	c := New()
	c.Add(record("a", nsd.HTTP, "192.0.2.1", 80))

	rec, found := c.Snapshot().Find(nsd.Identity{Name: "a", Type: string(nsd.HTTP)})
	require.True(t, found)
	assert.Equal(t, 80, rec.Port)

	_, found = c.Snapshot().Find(nsd.Identity{Name: "b", Type: string(nsd.HTTP)})
	assert.False(t, found)
}
