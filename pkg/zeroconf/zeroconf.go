package zeroconf

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

var log = logrus.WithField("comp", "zeroconf")

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

// Platform discovers and advertises services with grandcat/zeroconf.
// The resolver only reports every instance once per browse, so every
// query interval a short browse is started.
type Platform struct {
	*browse.Browser

	cfg Config

	// for testing
	zc wrap.Zeroconfer

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
		zc:      wrap.Zeroconf{},
		adverts: map[nsd.AdvertiseHandle]*advert{},
	}

	p.Browser = browse.New(p.browseQuery, browse.Config{
		QueryInterval: cfg.QueryInterval,
		LostAfter:     cfg.LostAfter,
		Clock:         cfg.Clock,
	})

	return p
}

func (p *Platform) ifaces() []net.Interface {
	if p.cfg.Interface == nil {
		return nil
	}
	return []net.Interface{*p.cfg.Interface}
}

func (p *Platform) Resolve(ctx context.Context, rec nsd.ServiceRecord, handler func(nsd.ResolveEvent)) {
	go p.resolve(ctx, rec, handler)
}

func (p *Platform) resolve(ctx context.Context, rec nsd.ServiceRecord, handler func(nsd.ResolveEvent)) {
	if cached, found := p.Lookup(rec); found {
		handler(nsd.Resolved{Record: cached})
		return
	}

	resolved, err := p.lookup(ctx, rec)
	if ctx.Err() != nil {
		log.WithField("id", rec.Identity().String()).Traceln("Resolve cancelled")
		return
	} else if err != nil {
		handler(nsd.ResolveFailed{Record: rec, Err: err})
		return
	}

	handler(nsd.Resolved{Record: resolved})
}

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
