package orchestrator

import (
	"errors"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/catalog"
	"github.com/dennis-tra/mdnssearch/pkg/discovery"
	"github.com/dennis-tra/mdnssearch/pkg/metrics"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
	"github.com/dennis-tra/mdnssearch/pkg/register"
)

var log = logrus.WithField("comp", "orchestrator")

var ErrAlreadyRegistered = errors.New("service name already registered")

// DefaultPort is advertised if a register request doesn't specify one.
const DefaultPort = 8080

type Config struct {
	// RetryDelay is the pause between failed resolve attempts.
	RetryDelay time.Duration

	// Clock drives the retry timers.
	Clock clock.Clock
}

func DefaultConfig() Config {
	return Config{
		RetryDelay: discovery.RetryDelay,
		Clock:      clock.New(),
	}
}

// RegisterRequest describes a service to advertise.
type RegisterRequest struct {
	Name string
	Type string

	// Host is the address to advertise. If nil, all local addresses
	// are advertised.
	Host net.IP

	// Port defaults to DefaultPort.
	Port int

	Attributes map[string][]byte
}

func (r RegisterRequest) Record() nsd.ServiceRecord {
	port := r.Port
	if port == 0 {
		port = DefaultPort
	}

	rec := nsd.ServiceRecord{
		Name:       r.Name,
		Type:       nsd.NormalizeType(r.Type),
		Domain:     nsd.DefaultDomain,
		Host:       r.Host,
		Port:       port,
		Attributes: r.Attributes,
	}

	return rec.Clone()
}

// Orchestrator owns the catalog, one discovery session per browsed
// service type and one registration session per advertised name.
// Discovery and registration are independent of each other.
type Orchestrator struct {
	platform nsd.Platform
	cfg      Config
	catalog  *catalog.Catalog

	discLk    sync.Mutex
	discovery map[string]*discovery.Session

	regLk         sync.Mutex
	registrations map[string]*register.Session
}

func New(platform nsd.Platform, cfg Config) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = discovery.RetryDelay
	}

	return &Orchestrator{
		platform:      platform,
		cfg:           cfg,
		catalog:       catalog.New(),
		discovery:     map[string]*discovery.Session{},
		registrations: map[string]*register.Session{},
	}
}

// Catalog returns the catalog observers can subscribe to. It must only
// be mutated by the orchestrator.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// StartDiscover starts browsing every given service type that isn't
// browsed already. Types the platform rejects are not recorded as
// active, and their errors are returned together.
func (o *Orchestrator) StartDiscover(serviceTypes ...string) error {
	var errs []error
	for _, serviceType := range serviceTypes {
		if err := o.startDiscover(nsd.NormalizeType(serviceType)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) startDiscover(serviceType string) error {
	logEntry := log.WithField("type", serviceType)

	if serviceType == "" {
		return nsd.ErrNoServiceType
	}

	o.discLk.Lock()
	if _, found := o.discovery[serviceType]; found {
		o.discLk.Unlock()
		logEntry.Infoln("Already discovering service type")
		return nil
	}

	s := discovery.NewSession(serviceType, o.platform, o.catalog, discovery.Config{
		RetryDelay:   o.cfg.RetryDelay,
		Clock:        o.cfg.Clock,
		OnTerminated: o.handleTerminated,
	})

	// reserve the slot, so concurrent requests for the same type are no-ops
	o.discovery[serviceType] = s
	metrics.DiscoverySessions.Set(float64(len(o.discovery)))
	o.discLk.Unlock()

	if err := s.StartListening(); err != nil {
		logEntry.WithError(err).Warnln("Couldn't start discovery")
		o.forgetDiscovery(s)
		return err
	}

	return nil
}

// StopDiscover stops browsing the given service type. Records already
// in the catalog stay there.
func (o *Orchestrator) StopDiscover(serviceType string) {
	serviceType = nsd.NormalizeType(serviceType)

	o.discLk.Lock()
	s, found := o.discovery[serviceType]
	delete(o.discovery, serviceType)
	metrics.DiscoverySessions.Set(float64(len(o.discovery)))
	o.discLk.Unlock()

	if !found {
		log.WithField("type", serviceType).Debugln("Not discovering service type")
		return
	}

	s.StopListening()
}

// StopAllDiscover stops all discovery sessions and clears the catalog.
func (o *Orchestrator) StopAllDiscover() {
	o.discLk.Lock()
	sessions := o.discovery
	o.discovery = map[string]*discovery.Session{}
	metrics.DiscoverySessions.Set(0)
	o.discLk.Unlock()

	log.WithField("count", len(sessions)).Infoln("Stopping all discovery sessions")

	for _, s := range sessions {
		s.StopListening()
	}

	// no stopped session touches the catalog anymore
	o.catalog.Clear()
}

// Restart stops all discovery and starts it again for the given types.
func (o *Orchestrator) Restart(serviceTypes ...string) error {
	o.StopAllDiscover()
	return o.StartDiscover(serviceTypes...)
}

// DiscoveringTypes returns the browsed service types in lexical order.
func (o *Orchestrator) DiscoveringTypes() []string {
	o.discLk.Lock()
	defer o.discLk.Unlock()

	types := make([]string, 0, len(o.discovery))
	for t := range o.discovery {
		types = append(types, t)
	}
	sort.Strings(types)

	return types
}

func (o *Orchestrator) handleTerminated(s *discovery.Session, err error) {
	log.WithError(err).WithField("type", s.ServiceType()).Warnln("Discovery terminated by platform")
	o.forgetDiscovery(s)
}

func (o *Orchestrator) forgetDiscovery(s *discovery.Session) {
	o.discLk.Lock()
	defer o.discLk.Unlock()

	// the slot may already belong to a newer session
	if o.discovery[s.ServiceType()] == s {
		delete(o.discovery, s.ServiceType())
	}
	metrics.DiscoverySessions.Set(float64(len(o.discovery)))
}

// StartRegister advertises a service. It returns ErrAlreadyRegistered
// without contacting the platform if a registration under the same name
// exists. A name whose earlier registration failed can be registered
// again. The outcome of the registration itself is only logged.
func (o *Orchestrator) StartRegister(req RegisterRequest) error {
	rec := req.Record()

	if rec.Name == "" {
		return nsd.ErrNoServiceName
	}

	if rec.Type == "" {
		return nsd.ErrNoServiceType
	}

	logEntry := log.WithField("name", rec.Name)

	o.regLk.Lock()
	if existing, found := o.registrations[rec.Name]; found {
		if !replaceable(existing) {
			o.regLk.Unlock()
			logEntry.Infoln("Service name already registered")
			return ErrAlreadyRegistered
		}
		logEntry.Debugln("Replacing failed registration")
	}

	s := register.NewSession(rec, o.platform)
	o.registrations[rec.Name] = s
	metrics.RegistrationSessions.Set(float64(len(o.registrations)))
	o.regLk.Unlock()

	if err := s.Start(); err != nil {
		logEntry.WithError(err).Warnln("Couldn't start registration")
		o.forgetRegistration(s)
		return err
	}

	return nil
}

// replaceable reports whether the session is idle because its
// registration failed. A fresh session that wasn't started yet is idle
// too but has no error.
func replaceable(s *register.Session) bool {
	return s.State() == register.StateIdle && s.Err() != nil
}

// StopRegister withdraws the advertisement of the given name. Unknown
// names are ignored.
func (o *Orchestrator) StopRegister(name string) {
	o.regLk.Lock()
	s, found := o.registrations[name]
	delete(o.registrations, name)
	metrics.RegistrationSessions.Set(float64(len(o.registrations)))
	o.regLk.Unlock()

	if !found {
		log.WithField("name", name).Debugln("Service name not registered")
		return
	}

	s.Stop()
}

// StopAllRegister withdraws all advertisements.
func (o *Orchestrator) StopAllRegister() {
	o.regLk.Lock()
	sessions := o.registrations
	o.registrations = map[string]*register.Session{}
	metrics.RegistrationSessions.Set(0)
	o.regLk.Unlock()

	log.WithField("count", len(sessions)).Infoln("Stopping all registrations")

	for _, s := range sessions {
		s.Stop()
	}
}

// RegisteredNames returns the names of all registrations that are
// registered or registering, in lexical order.
func (o *Orchestrator) RegisteredNames() []string {
	o.regLk.Lock()
	defer o.regLk.Unlock()

	names := make([]string, 0, len(o.registrations))
	for name, s := range o.registrations {
		if s.Active() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}

// Registration is the status of a single registration.
type Registration struct {
	State register.State

	// Err is the reason the last registration attempt failed.
	Err error
}

// Registration returns the status of the registration with the given
// name.
func (o *Orchestrator) Registration(name string) (Registration, bool) {
	o.regLk.Lock()
	s, found := o.registrations[name]
	o.regLk.Unlock()

	if !found {
		return Registration{}, false
	}

	return Registration{State: s.State(), Err: s.Err()}, true
}

func (o *Orchestrator) forgetRegistration(s *register.Session) {
	o.regLk.Lock()
	defer o.regLk.Unlock()

	if o.registrations[s.Name()] == s {
		delete(o.registrations, s.Name())
	}
	metrics.RegistrationSessions.Set(float64(len(o.registrations)))
}

// StopAll stops all registrations and then all discovery.
func (o *Orchestrator) StopAll() {
	o.StopAllRegister()
	o.StopAllDiscover()
}

// Close stops everything and ends all catalog subscriptions.
func (o *Orchestrator) Close() {
	o.StopAll()
	o.catalog.Close()
}
