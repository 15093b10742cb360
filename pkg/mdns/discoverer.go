package mdns

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/pkg/errors"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var ErrNotFound = errors.New("service instance not found")

func (p *Platform) browseQuery(ctx context.Context, serviceType string, found func(nsd.ServiceRecord)) error {
	return p.query(ctx, serviceType, p.cfg.QueryTimeout, found)
}

// lookup queries the service type of rec and returns the first answer
// of the same instance.
func (p *Platform) lookup(ctx context.Context, rec nsd.ServiceRecord) (nsd.ServiceRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		result  nsd.ServiceRecord
		matched bool
	)

	err := p.query(ctx, nsd.NormalizeType(rec.Type), p.cfg.ResolveTimeout, func(candidate nsd.ServiceRecord) {
		if matched || candidate.Name != rec.Name {
			return
		}
		result, matched = candidate, true
		cancel()
	})

	if matched {
		return result, nil
	} else if err != nil {
		return nsd.ServiceRecord{}, errors.Wrap(err, "mdns lookup")
	}

	return nsd.ServiceRecord{}, ErrNotFound
}

// query sends a single mDNS query and passes every complete answer of
// the service type to found.
func (p *Platform) query(ctx context.Context, serviceType string, timeout time.Duration, found func(nsd.ServiceRecord)) error {
	entriesCh := make(chan *mdns.ServiceEntry, 16)

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.drainEntriesChan(entriesCh, serviceType, found)
	}()

	qp := &mdns.QueryParam{
		Service:   serviceType,
		Domain:    strings.Trim(p.cfg.Domain, "."),
		Timeout:   timeout,
		Interface: p.cfg.Interface,
		Entries:   entriesCh,
	}

	err := p.mdns.Query(ctx, qp)
	close(entriesCh)
	<-done

	return err
}

func (p *Platform) drainEntriesChan(entries chan *mdns.ServiceEntry, serviceType string, found func(nsd.ServiceRecord)) {
	for entry := range entries {
		rec, err := parseServiceEntry(entry, serviceType, p.cfg.Domain)
		if err != nil {
			log.WithError(err).Traceln("Ignoring mdns entry")
			continue
		}

		found(rec)
	}
}

func parseServiceEntry(entry *mdns.ServiceEntry, serviceType string, domain string) (nsd.ServiceRecord, error) {
	name, err := nsd.InstanceName(entry.Name, serviceType, domain)
	if err != nil {
		return nsd.ServiceRecord{}, errors.Wrap(err, "error parsing instance name from mdns entry")
	}

	var addr net.IP
	if entry.AddrV4 != nil {
		addr = entry.AddrV4
	} else if entry.AddrV6 != nil {
		addr = entry.AddrV6
	} else {
		return nsd.ServiceRecord{}, errors.New("error parsing mdns entry: no IP address found")
	}

	return nsd.ServiceRecord{
		Name:       name,
		Type:       serviceType,
		Domain:     domain,
		HostName:   entry.Host,
		Host:       addr,
		Port:       entry.Port,
		Attributes: nsd.ParseTXT(entry.InfoFields),
	}, nil
}
