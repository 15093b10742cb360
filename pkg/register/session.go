package register

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "register")

var ErrNotIdle = errors.New("registration is not idle")

type State string

const (
	StateIdle        State = "idle"
	StateRegistering State = "registering"
	StateRegistered  State = "registered"
	StateStopped     State = "stopped"
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateRegistering:
		return "StateRegistering"
	case StateRegistered:
		return "StateRegistered"
	case StateStopped:
		return "StateStopped"
	default:
		return "StateUnknown"
	}
}

// Session advertises a single service. A failed registration puts the
// session back to idle, it is not retried.
type Session struct {
	record   nsd.ServiceRecord
	platform nsd.Platform

	lk        sync.Mutex
	state     State
	handle    nsd.AdvertiseHandle
	hasHandle bool
	err       error
}

func NewSession(rec nsd.ServiceRecord, platform nsd.Platform) *Session {
	if rec.Domain == "" {
		rec.Domain = nsd.DefaultDomain
	}

	return &Session{
		record:   rec.Clone(),
		platform: platform,
		state:    StateIdle,
	}
}

func (s *Session) Name() string {
	return s.record.Name
}

func (s *Session) Record() nsd.ServiceRecord {
	return s.record.Clone()
}

func (s *Session) State() State {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.state
}

// Err returns the reason of the last failed registration.
func (s *Session) Err() error {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.err
}

// Active reports whether the service is advertised or about to be.
func (s *Session) Active() bool {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.state == StateRegistering || s.state == StateRegistered
}

func (s *Session) logEntry() *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"name":  s.record.Name,
		"type":  s.record.Type,
		"state": s.state.String(),
	})
}

// Start asks the platform to advertise the service. The outcome is
// reported asynchronously. An error is only returned if the platform
// refused to even try.
func (s *Session) Start() error {
	s.lk.Lock()
	if s.state != StateIdle {
		s.lk.Unlock()
		return ErrNotIdle
	}
	s.state = StateRegistering
	s.err = nil
	s.logEntry().WithField("port", s.record.Port).Infoln("Registering service")
	s.lk.Unlock()

	h, err := s.platform.Advertise(s.record.Clone(), s.handleEvent)

	s.lk.Lock()
	if err != nil {
		if s.state == StateRegistering {
			s.state = StateIdle
			s.err = err
		}
		s.logEntry().WithError(err).Warnln("Platform rejected advertisement")
		s.lk.Unlock()
		return fmt.Errorf("advertise %s: %w", s.record.Name, err)
	}

	switch s.state {
	case StateRegistering, StateRegistered:
		s.handle = h
		s.hasHandle = true
		s.lk.Unlock()
	case StateStopped:
		s.logEntry().Debugln("Session stopped during start")
		s.lk.Unlock()
		s.stopAdvertise(h)
	default:
		// failed before Advertise returned
		s.lk.Unlock()
	}

	return nil
}

// Stop withdraws the advertisement. Errors of the platform are logged
// only. Calling Stop on an idle or stopped session does nothing.
func (s *Session) Stop() {
	s.lk.Lock()
	if s.state != StateRegistering && s.state != StateRegistered {
		s.lk.Unlock()
		return
	}

	s.logEntry().Infoln("Unregistering service")

	s.state = StateStopped
	h, hasHandle := s.handle, s.hasHandle
	s.hasHandle = false
	s.lk.Unlock()

	if hasHandle {
		s.stopAdvertise(h)
	}
}

func (s *Session) stopAdvertise(h nsd.AdvertiseHandle) {
	if err := s.platform.StopAdvertise(h); err != nil {
		log.WithError(err).WithField("name", s.record.Name).Warnln("Failed stopping advertisement")
	}
}

func (s *Session) handleEvent(evt nsd.RegistrationEvent) {
	s.lk.Lock()
	defer s.lk.Unlock()

	switch evt := evt.(type) {
	case nsd.Registered:
		if s.state != StateRegistering {
			return
		}
		s.state = StateRegistered
		s.logEntry().Infoln("Service registered")
	case nsd.RegistrationFailed:
		if s.state != StateRegistering {
			return
		}
		s.state = StateIdle
		s.hasHandle = false
		s.err = evt.Err
		s.logEntry().WithError(evt.Err).Warnln("Registration failed")
	case nsd.Unregistered:
		s.logEntry().Infoln("Service unregistered")
	case nsd.UnregistrationFailed:
		s.logEntry().WithError(evt.Err).Warnln("Unregistration failed")
	default:
		s.logEntry().Warnf("unexpected registration event %T\n", evt)
	}
}
