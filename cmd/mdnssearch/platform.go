package main

import (
	"fmt"

	"github.com/dennis-tra/mdnssearch/pkg/config"
	"github.com/dennis-tra/mdnssearch/pkg/mdns"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
	"github.com/dennis-tra/mdnssearch/pkg/orchestrator"
	"github.com/dennis-tra/mdnssearch/pkg/zeroconf"
)

type platform interface {
	nsd.Platform
	Close()
}

// newPlatform constructs the backend selected by the global
// configuration.
func newPlatform(cfg config.GlobalConfig) (platform, error) {
	iface, err := cfg.NetInterface()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendMDNS:
		mcfg := mdns.DefaultConfig()
		mcfg.Domain = cfg.Domain
		mcfg.Interface = iface
		mcfg.QueryInterval = cfg.QueryInterval
		mcfg.QueryTimeout = cfg.QueryTimeout
		mcfg.ResolveTimeout = cfg.ResolveTimeout
		mcfg.LostAfter = cfg.LostAfter
		return mdns.New(mcfg), nil
	case config.BackendZeroconf:
		zcfg := zeroconf.DefaultConfig()
		zcfg.Domain = cfg.Domain
		zcfg.Interface = iface
		zcfg.QueryInterval = cfg.QueryInterval
		zcfg.QueryTimeout = cfg.QueryTimeout
		zcfg.ResolveTimeout = cfg.ResolveTimeout
		zcfg.LostAfter = cfg.LostAfter
		return zeroconf.New(zcfg), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func newOrchestrator(cfg config.GlobalConfig) (*orchestrator.Orchestrator, platform, error) {
	p, err := newPlatform(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("new %s platform: %w", cfg.Backend, err)
	}

	ocfg := orchestrator.DefaultConfig()
	ocfg.RetryDelay = cfg.RetryDelay

	return orchestrator.New(p, ocfg), p, nil
}
