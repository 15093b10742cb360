package zeroconf

import (
	"context"
	"net"

	"github.com/grandcat/zeroconf"
	"github.com/pkg/errors"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var ErrNotFound = errors.New("service instance not found")

func (p *Platform) browseQuery(ctx context.Context, serviceType string, found func(nsd.ServiceRecord)) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 16)
	if err := p.zc.Browse(ctx, serviceType, p.cfg.Domain, p.ifaces(), entries); err != nil {
		return errors.Wrap(err, "zeroconf browse")
	}

	// the resolver closes entries when ctx is done
	for entry := range entries {
		rec, err := parseServiceEntry(entry, serviceType, p.cfg.Domain)
		if err != nil {
			log.WithError(err).Traceln("Ignoring zeroconf entry")
			continue
		}
		found(rec)
	}

	return nil
}

func (p *Platform) lookup(ctx context.Context, rec nsd.ServiceRecord) (nsd.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ResolveTimeout)
	defer cancel()

	serviceType := nsd.NormalizeType(rec.Type)

	entries := make(chan *zeroconf.ServiceEntry, 16)
	if err := p.zc.Lookup(ctx, rec.Name, serviceType, p.cfg.Domain, p.ifaces(), entries); err != nil {
		return nsd.ServiceRecord{}, errors.Wrap(err, "zeroconf lookup")
	}

	var (
		result  nsd.ServiceRecord
		matched bool
	)
	for entry := range entries {
		candidate, err := parseServiceEntry(entry, serviceType, p.cfg.Domain)
		if err != nil || matched || candidate.Name != rec.Name || !candidate.Resolved() {
			continue
		}
		result, matched = candidate, true
		cancel()
	}

	if !matched {
		return nsd.ServiceRecord{}, ErrNotFound
	}

	return result, nil
}

// parseServiceEntry converts an entry of the resolver. The record is
// unresolved if the entry carries no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry, serviceType string, domain string) (nsd.ServiceRecord, error) {
	name, err := nsd.InstanceName(entry.ServiceInstanceName(), serviceType, domain)
	if err != nil {
		return nsd.ServiceRecord{}, errors.Wrap(err, "error parsing instance name from zeroconf entry")
	}

	var addr net.IP
	if len(entry.AddrIPv4) > 0 {
		addr = entry.AddrIPv4[0]
	} else if len(entry.AddrIPv6) > 0 {
		addr = entry.AddrIPv6[0]
	}

	rec := nsd.ServiceRecord{
		Name:       name,
		Type:       serviceType,
		Domain:     domain,
		HostName:   entry.HostName,
		Attributes: nsd.ParseTXT(entry.Text),
	}

	if addr != nil && entry.Port > 0 {
		rec.Host = addr
		rec.Port = entry.Port
	}

	return rec, nil
}
