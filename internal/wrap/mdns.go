package wrap

import (
	"context"

	"github.com/hashicorp/mdns"
)

type MDNSer interface {
	Query(ctx context.Context, params *mdns.QueryParam) error
	NewServer(config *mdns.Config) (MDNSServer, error)
}

type MDNSServer interface {
	Shutdown() error
}

type MDNS struct{}

func (MDNS) Query(ctx context.Context, params *mdns.QueryParam) error {
	return mdns.QueryContext(ctx, params)
}

func (MDNS) NewServer(config *mdns.Config) (MDNSServer, error) {
	server, err := mdns.NewServer(config)
	if err != nil {
		return nil, err
	}
	return server, nil
}
