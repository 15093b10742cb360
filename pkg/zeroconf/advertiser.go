package zeroconf

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/internal/wrap"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

type advert struct {
	record  nsd.ServiceRecord
	handler func(nsd.RegistrationEvent)
	server  wrap.ZeroconfServer
}

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

	server, err := p.register(a.record)
	if err != nil {
		logEntry.WithError(err).Warnln("Failed registering service")

		p.lk.Lock()
		delete(p.adverts, h)
		p.lk.Unlock()

		a.handler(nsd.RegistrationFailed{Record: a.record, Err: err})
		return
	}

	p.lk.Lock()
	if _, found := p.adverts[h]; !found {
		p.lk.Unlock()
		server.Shutdown()
		a.handler(nsd.Unregistered{Record: a.record})
		return
	}
	a.server = server
	p.lk.Unlock()

	logEntry.Infoln("Advertising service")
	a.handler(nsd.Registered{Record: a.record})
}

// register publishes the record for all local addresses, or as a proxy
// for the record's host if it has one.
func (p *Platform) register(rec nsd.ServiceRecord) (wrap.ZeroconfServer, error) {
	if rec.Host == nil {
		return p.zc.Register(rec.Name, rec.Type, rec.Domain, rec.Port, rec.TXT(), p.ifaces())
	}

	host := rec.HostName
	if host == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, errors.Wrap(err, "get hostname")
		}
		host = hostname
	}

	// the responder appends the domain itself
	host = strings.TrimSuffix(strings.Trim(host, "."), "."+strings.Trim(rec.Domain, "."))

	return p.zc.RegisterProxy(rec.Name, rec.Type, rec.Domain, rec.Port, host, []string{rec.Host.String()}, rec.TXT(), p.ifaces())
}

func (p *Platform) StopAdvertise(h nsd.AdvertiseHandle) error {
	p.lk.Lock()
	a, found := p.adverts[h]
	delete(p.adverts, h)
	var server wrap.ZeroconfServer
	if found {
		server = a.server
	}
	p.lk.Unlock()

	if !found {
		return nsd.ErrUnknownHandle
	}

	if server != nil {
		server.Shutdown()
		a.handler(nsd.Unregistered{Record: a.record})
	}

	return nil
}
