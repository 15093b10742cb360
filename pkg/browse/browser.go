package browse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/lifecycle"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "browse")

// QueryFunc sends a single query for the given service type and passes
// every instance that answered to found. It returns once the query is
// finished.
type QueryFunc func(ctx context.Context, serviceType string, found func(nsd.ServiceRecord)) error

type Config struct {
	// QueryInterval is the time between the start of two queries.
	QueryInterval time.Duration

	// LostAfter is the time an instance is considered alive after it
	// last answered.
	LostAfter time.Duration

	Clock clock.Clock
}

func DefaultConfig() Config {
	return Config{
		QueryInterval: 10 * time.Second,
		LostAfter:     30 * time.Second,
		Clock:         clock.New(),
	}
}

// Browser implements browsing for backends that can only send one-shot
// queries. Every browse repeatedly queries its service type and reports
// instances that appear and disappear between queries.
type Browser struct {
	cfg   Config
	query QueryFunc

	lk    sync.Mutex
	cntr  nsd.BrowseHandle
	loops map[nsd.BrowseHandle]*loop
}

type loop struct {
	handle      nsd.BrowseHandle
	serviceType string
	handler     func(nsd.BrowseEvent)
	lc          *lifecycle.Lifecycle
	tracker     *nsd.Tracker
}

func New(query QueryFunc, cfg Config) *Browser {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	return &Browser{
		cfg:   cfg,
		query: query,
		loops: map[nsd.BrowseHandle]*loop{},
	}
}

func (b *Browser) Browse(serviceType string, handler func(nsd.BrowseEvent)) (nsd.BrowseHandle, error) {
	serviceType = nsd.NormalizeType(serviceType)
	if serviceType == "" {
		return 0, nsd.ErrNoServiceType
	}

	b.lk.Lock()
	b.cntr += 1
	l := &loop{
		handle:      b.cntr,
		serviceType: serviceType,
		handler:     handler,
		lc:          lifecycle.New(fmt.Sprintf("browse %s", serviceType)),
		tracker:     nsd.NewTracker(b.cfg.Clock, b.cfg.LostAfter, handler),
	}
	b.loops[l.handle] = l
	b.lk.Unlock()

	// mark as started before the loop runs, so a quick StopBrowse
	// doesn't miss it
	if err := l.lc.Started(); err != nil {
		return 0, err
	}

	go b.run(l)

	return l.handle, nil
}

// StopBrowse stops the browse and waits until its loop returned. The
// handler receives BrowseStopped as the last event.
func (b *Browser) StopBrowse(h nsd.BrowseHandle) error {
	b.lk.Lock()
	l, found := b.loops[h]
	delete(b.loops, h)
	b.lk.Unlock()

	if !found {
		return nsd.ErrUnknownHandle
	}

	l.lc.Shutdown()

	return nil
}

// Lookup returns the most recent complete record of the given instance
// seen by any browse of its service type.
func (b *Browser) Lookup(rec nsd.ServiceRecord) (nsd.ServiceRecord, bool) {
	serviceType := nsd.NormalizeType(rec.Type)

	b.lk.Lock()
	defer b.lk.Unlock()

	for _, l := range b.loops {
		if l.serviceType != serviceType {
			continue
		}

		if cached, found := l.tracker.Lookup(rec.Identity()); found {
			return cached, true
		}
	}

	return nsd.ServiceRecord{}, false
}

// Close stops all browses.
func (b *Browser) Close() {
	b.lk.Lock()
	handles := make([]nsd.BrowseHandle, 0, len(b.loops))
	for h := range b.loops {
		handles = append(handles, h)
	}
	b.lk.Unlock()

	for _, h := range handles {
		_ = b.StopBrowse(h)
	}
}

func (b *Browser) logEntry(l *loop) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"type":   l.serviceType,
		"handle": l.handle,
	})
}

func (b *Browser) run(l *loop) {
	defer l.lc.Stopped()

	ticker := b.cfg.Clock.Ticker(b.cfg.QueryInterval)
	defer ticker.Stop()

	logEntry := b.logEntry(l)
	logEntry.Infoln("Start browsing")

	for i := 0; ; i++ {
		err := b.query(l.lc.Context(), l.serviceType, l.tracker.Seen)
		if err != nil && l.lc.Context().Err() == nil {
			if i == 0 {
				logEntry.WithError(err).Warnln("Browse failed")
				b.fail(l, err)
				return
			}
			logEntry.WithError(err).Warnln("Query failed")
		}

		select {
		case <-l.lc.SigShutdown():
			l.tracker.Stop()
			logEntry.Infoln("Stopped browsing")
			l.handler(nsd.BrowseStopped{ServiceType: l.serviceType})
			return
		case <-ticker.C:
			logEntry.WithField("alive", l.tracker.Len()).Traceln("Querying again")
		}
	}
}

// fail ends a browse whose first query failed.
func (b *Browser) fail(l *loop, err error) {
	l.tracker.Stop()

	b.lk.Lock()
	delete(b.loops, l.handle)
	b.lk.Unlock()

	l.handler(nsd.BrowseFailed{ServiceType: l.serviceType, Err: err})
}
