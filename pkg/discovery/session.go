package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "discovery")

var ErrNotIdle = errors.New("session is not idle")

type State string

const (
	StateIdle      State = "idle"
	StateListening State = "listening"
	StateStopped   State = "stopped"
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateListening:
		return "StateListening"
	case StateStopped:
		return "StateStopped"
	default:
		return "StateUnknown"
	}
}

// Catalog receives the resolved records of a session.
type Catalog interface {
	Add(rec nsd.ServiceRecord) bool
	Remove(rec nsd.ServiceRecord) bool
}

type Config struct {
	// RetryDelay is the pause between failed resolve attempts.
	RetryDelay time.Duration

	// Clock drives the retry timers.
	Clock clock.Clock

	// OnTerminated is called when the platform ended the browse on
	// its own, e.g. because it failed after it was set up.
	OnTerminated func(s *Session, err error)
}

func DefaultConfig() Config {
	return Config{
		RetryDelay: RetryDelay,
		Clock:      clock.New(),
	}
}

// Session browses a single service type. Found services are resolved
// and added to the catalog, lost services are resolved and removed from
// it. A stopped session cannot be started again.
type Session struct {
	serviceType string
	platform    nsd.Platform
	catalog     Catalog
	cfg         Config

	lk        sync.Mutex
	state     State
	handle    nsd.BrowseHandle
	hasHandle bool
	retrier   *Retrier
}

func NewSession(serviceType string, platform nsd.Platform, catalog Catalog, cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = RetryDelay
	}

	return &Session{
		serviceType: serviceType,
		platform:    platform,
		catalog:     catalog,
		cfg:         cfg,
		state:       StateIdle,
	}
}

func (s *Session) ServiceType() string {
	return s.serviceType
}

func (s *Session) State() State {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.state
}

func (s *Session) logEntry() *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"type":  s.serviceType,
		"state": s.state.String(),
	})
}

// StartListening registers the browse with the platform. If the platform
// rejects it, the session stays idle and the error is returned.
func (s *Session) StartListening() error {
	s.lk.Lock()
	if s.state != StateIdle {
		s.lk.Unlock()
		return ErrNotIdle
	}
	s.state = StateListening
	s.retrier = NewRetrier(context.Background(), s.platform, s.cfg.Clock, s.cfg.RetryDelay)
	s.logEntry().Infoln("Start listening")
	s.lk.Unlock()

	// The platform may call handleEvent before Browse returns, so
	// the lock must not be held here.
	h, err := s.platform.Browse(s.serviceType, s.handleEvent)

	s.lk.Lock()
	if err != nil {
		retrier := s.retrier
		if s.state == StateListening {
			s.state = StateIdle
			s.retrier = nil
		}
		s.logEntry().WithError(err).Warnln("Platform rejected browse")
		s.lk.Unlock()

		retrier.Stop()
		return fmt.Errorf("browse %s: %w", s.serviceType, err)
	}

	if s.state == StateListening {
		s.handle = h
		s.hasHandle = true
		s.lk.Unlock()
		return nil
	}

	// stopped while the platform was setting up the browse
	s.logEntry().Debugln("Session stopped during start")
	s.lk.Unlock()

	s.stopBrowse(h)
	return nil
}

// StopListening stops the browse and cancels all resolve cycles. When it
// returns, the session won't touch the catalog anymore. Calling it on an
// idle or stopped session does nothing.
func (s *Session) StopListening() {
	s.lk.Lock()
	if s.state != StateListening {
		s.lk.Unlock()
		return
	}

	s.logEntry().Infoln("Stop listening")

	s.state = StateStopped
	retrier := s.retrier
	h, hasHandle := s.handle, s.hasHandle
	s.hasHandle = false
	s.lk.Unlock()

	retrier.Stop()

	if hasHandle {
		s.stopBrowse(h)
	}
}

func (s *Session) stopBrowse(h nsd.BrowseHandle) {
	if err := s.platform.StopBrowse(h); err != nil {
		log.WithError(err).WithField("type", s.serviceType).Warnln("Failed stopping browse")
	}
}

func (s *Session) handleEvent(evt nsd.BrowseEvent) {
	switch evt := evt.(type) {
	case nsd.Found:
		s.resolve(evt.Record, KindFound, s.catalog.Add)
	case nsd.Lost:
		s.resolve(evt.Record, KindLost, s.catalog.Remove)
	case nsd.BrowseFailed:
		s.terminate(evt.Err)
	case nsd.BrowseStopped:
		log.WithField("type", s.serviceType).Debugln("Browse stopped")
	default:
		log.WithField("type", s.serviceType).Warnf("unexpected browse event %T\n", evt)
	}
}

func (s *Session) resolve(rec nsd.ServiceRecord, kind Kind, mutate func(nsd.ServiceRecord) bool) {
	s.lk.Lock()
	if s.state != StateListening {
		s.logEntry().WithField("kind", kind).Debugln("Ignoring event of inactive session")
		s.lk.Unlock()
		return
	}
	retrier := s.retrier
	s.lk.Unlock()

	retrier.Resolve(rec, kind, func(resolved nsd.ServiceRecord) {
		s.apply(func() {
			mutate(resolved)
		})
	})
}

// apply runs fn unless the session was stopped. StopListening waits for
// a running fn to return.
func (s *Session) apply(fn func()) {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.state != StateListening {
		return
	}

	fn()
}

// terminate handles a browse that ended without being asked to.
func (s *Session) terminate(err error) {
	s.lk.Lock()
	if s.state != StateListening {
		s.lk.Unlock()
		return
	}

	s.logEntry().WithError(err).Warnln("Browse failed")

	s.state = StateStopped
	s.hasHandle = false
	retrier := s.retrier
	s.lk.Unlock()

	retrier.Stop()

	if s.cfg.OnTerminated != nil {
		s.cfg.OnTerminated(s, err)
	}
}
