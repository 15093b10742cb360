package wrap

import (
	"context"
	"net"

	"github.com/grandcat/zeroconf"
)

type Zeroconfer interface {
	Browse(ctx context.Context, service, domain string, ifaces []net.Interface, entries chan<- *zeroconf.ServiceEntry) error
	Lookup(ctx context.Context, instance, service, domain string, ifaces []net.Interface, entries chan<- *zeroconf.ServiceEntry) error
	Register(instance, service, domain string, port int, text []string, ifaces []net.Interface) (ZeroconfServer, error)
	RegisterProxy(instance, service, domain string, port int, host string, ips []string, text []string, ifaces []net.Interface) (ZeroconfServer, error)
}

type ZeroconfServer interface {
	Shutdown()
}

type Zeroconf struct{}

func (Zeroconf) newResolver(ifaces []net.Interface) (*zeroconf.Resolver, error) {
	if len(ifaces) == 0 {
		return zeroconf.NewResolver()
	}
	return zeroconf.NewResolver(zeroconf.SelectIfaces(ifaces))
}

func (z Zeroconf) Browse(ctx context.Context, service, domain string, ifaces []net.Interface, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := z.newResolver(ifaces)
	if err != nil {
		return err
	}
	return resolver.Browse(ctx, service, domain, entries)
}

func (z Zeroconf) Lookup(ctx context.Context, instance, service, domain string, ifaces []net.Interface, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := z.newResolver(ifaces)
	if err != nil {
		return err
	}
	return resolver.Lookup(ctx, instance, service, domain, entries)
}

func (Zeroconf) Register(instance, service, domain string, port int, text []string, ifaces []net.Interface) (ZeroconfServer, error) {
	server, err := zeroconf.Register(instance, service, domain, port, text, ifaces)
	if err != nil {
		return nil, err
	}
	return server, nil
}

func (Zeroconf) RegisterProxy(instance, service, domain string, port int, host string, ips []string, text []string, ifaces []net.Interface) (ZeroconfServer, error) {
	server, err := zeroconf.RegisterProxy(instance, service, domain, port, host, ips, text, ifaces)
	if err != nil {
		return nil, err
	}
	return server, nil
}
