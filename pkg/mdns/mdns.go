package mdns

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/internal/wrap"
	"github.com/dennis-tra/mdnssearch/pkg/browse"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "mdns")

type Config struct {
	Domain string

	// Interface restricts queries and advertisements to a single
	// network interface. Nil means all.
	Interface *net.Interface

	QueryInterval  time.Duration
	QueryTimeout   time.Duration
	ResolveTimeout time.Duration
	LostAfter      time.Duration

	Clock clock.Clock
}

func DefaultConfig() Config {
	return Config{
		Domain:         nsd.DefaultDomain,
		QueryInterval:  10 * time.Second,
		QueryTimeout:   2 * time.Second,
		ResolveTimeout: 3 * time.Second,
		LostAfter:      30 * time.Second,
		Clock:          clock.New(),
	}
}

// Platform discovers and advertises services with hashicorp/mdns.
// Browsing is done by periodic queries.
type Platform struct {
	*browse.Browser

	cfg Config

	// for testing
	mdns wrap.MDNSer

	lk      sync.Mutex
	cntr    nsd.AdvertiseHandle
	adverts map[nsd.AdvertiseHandle]*advert
}

var _ nsd.Platform = (*Platform)(nil)

func New(cfg Config) *Platform {
	if cfg.Domain == "" {
		cfg.Domain = nsd.DefaultDomain
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	p := &Platform{
		cfg:     cfg,
		mdns:    wrap.MDNS{},
		adverts: map[nsd.AdvertiseHandle]*advert{},
	}

	p.Browser = browse.New(p.browseQuery, browse.Config{
		QueryInterval: cfg.QueryInterval,
		LostAfter:     cfg.LostAfter,
		Clock:         cfg.Clock,
	})

	return p
}

// Resolve answers from the records seen by running browses and only
// queries the network if the instance isn't known.
func (p *Platform) Resolve(ctx context.Context, rec nsd.ServiceRecord, handler func(nsd.ResolveEvent)) {
	// browse events call Resolve with tracker locks held
	go p.resolve(ctx, rec, handler)
}

func (p *Platform) resolve(ctx context.Context, rec nsd.ServiceRecord, handler func(nsd.ResolveEvent)) {
	logEntry := log.WithField("id", rec.Identity().String())

	if cached, found := p.Lookup(rec); found {
		logEntry.Traceln("Resolved from cache")
		handler(nsd.Resolved{Record: cached})
		return
	}

	resolved, err := p.lookup(ctx, rec)
	if ctx.Err() != nil {
		logEntry.Traceln("Resolve cancelled")
		return
	} else if err != nil {
		handler(nsd.ResolveFailed{Record: rec, Err: err})
		return
	}

	handler(nsd.Resolved{Record: resolved})
}

// Close stops all browses and advertisements.
func (p *Platform) Close() {
	p.Browser.Close()

	p.lk.Lock()
	handles := make([]nsd.AdvertiseHandle, 0, len(p.adverts))
	for h := range p.adverts {
		handles = append(handles, h)
	}
	p.lk.Unlock()

	for _, h := range handles {
		_ = p.StopAdvertise(h)
	}
}
