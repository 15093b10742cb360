package mdns

import (
	"net"

	"github.com/hashicorp/mdns"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/internal/wrap"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

type advert struct {
	record  nsd.ServiceRecord
	handler func(nsd.RegistrationEvent)
	server  wrap.MDNSServer
}

// Advertise starts an mDNS responder for the record. The result is
// reported to the handler from another goroutine.
func (p *Platform) Advertise(rec nsd.ServiceRecord, handler func(nsd.RegistrationEvent)) (nsd.AdvertiseHandle, error) {
	if rec.Name == "" {
		return 0, nsd.ErrNoServiceName
	}

	rec.Type = nsd.NormalizeType(rec.Type)
	if rec.Type == "" {
		return 0, nsd.ErrNoServiceType
	}

	if rec.Domain == "" {
		rec.Domain = p.cfg.Domain
	}
	rec.Domain = dns.Fqdn(rec.Domain)

	if rec.HostName != "" {
		rec.HostName = dns.Fqdn(rec.HostName)
	}

	p.lk.Lock()
	p.cntr += 1
	h := p.cntr
	a := &advert{record: rec.Clone(), handler: handler}
	p.adverts[h] = a
	p.lk.Unlock()

	go p.advertise(h, a)

	return h, nil
}

func (p *Platform) advertise(h nsd.AdvertiseHandle, a *advert) {
	logEntry := log.WithFields(logrus.Fields{
		"name":   a.record.Name,
		"type":   a.record.Type,
		"handle": h,
	})

	server, err := p.newServer(a.record)
	if err != nil {
		logEntry.WithError(err).Warnln("Failed starting mdns responder")

		p.lk.Lock()
		delete(p.adverts, h)
		p.lk.Unlock()

		a.handler(nsd.RegistrationFailed{Record: a.record, Err: err})
		return
	}

	p.lk.Lock()
	if _, found := p.adverts[h]; !found {
		// stopped while starting
		p.lk.Unlock()
		p.shutdown(a, server)
		return
	}
	a.server = server
	p.lk.Unlock()

	logEntry.Infoln("Advertising service")
	a.handler(nsd.Registered{Record: a.record})
}

func (p *Platform) newServer(rec nsd.ServiceRecord) (wrap.MDNSServer, error) {
	var ips []net.IP
	if rec.Host != nil {
		ips = []net.IP{rec.Host}
	} else {
		var err error
		ips, err = nsd.LocalIPv4s(p.cfg.Interface)
		if err != nil {
			return nil, errors.Wrap(err, "get local ips")
		}
	}

	zone, err := mdns.NewMDNSService(rec.Name, rec.Type, rec.Domain, rec.HostName, rec.Port, ips, rec.TXT())
	if err != nil {
		return nil, errors.Wrap(err, "create mdns service")
	}

	return p.mdns.NewServer(&mdns.Config{Zone: zone, Iface: p.cfg.Interface})
}

// StopAdvertise shuts the responder down. An advertisement that is
// still starting is shut down as soon as it is up.
func (p *Platform) StopAdvertise(h nsd.AdvertiseHandle) error {
	p.lk.Lock()
	a, found := p.adverts[h]
	delete(p.adverts, h)
	var server wrap.MDNSServer
	if found {
		server = a.server
	}
	p.lk.Unlock()

	if !found {
		return nsd.ErrUnknownHandle
	}

	if server != nil {
		p.shutdown(a, server)
	}

	return nil
}

func (p *Platform) shutdown(a *advert, server wrap.MDNSServer) {
	if err := server.Shutdown(); err != nil {
		log.WithError(err).WithField("name", a.record.Name).Warnln("Failed shutting down mdns responder")
		a.handler(nsd.UnregistrationFailed{Record: a.record, Err: err})
		return
	}
	a.handler(nsd.Unregistered{Record: a.record})
}
