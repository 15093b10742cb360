package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
	"github.com/dennis-tra/mdnssearch/pkg/orchestrator"
)

type AdvertiseConfig struct {
	// Name is the advertised service instance name
	Name string

	// Type is a well-known service type or a raw _name._proto type
	Type string

	// Host is the advertised address. Empty means all local addresses.
	Host string

	Port int

	// Attrs holds key=value TXT attributes
	Attrs []string
}

func (c AdvertiseConfig) String() string {
	return fmt.Sprintf("Name=%q Type=%s Host=%s Port=%d Attrs=%v", c.Name, c.Type, c.Host, c.Port, c.Attrs)
}

var Advertise = AdvertiseConfig{
	Name: DefaultName(),
	Type: string(nsd.HTTP),
	Port: orchestrator.DefaultPort,
}

// DefaultName generates an instance name that is unlikely to collide
// with other instances on the network.
func DefaultName() string {
	return Prefix + "-" + uuid.NewString()[:8]
}

// RegisterRequest validates the advertise configuration and converts it.
func (c AdvertiseConfig) RegisterRequest() (orchestrator.RegisterRequest, error) {
	if strings.TrimSpace(c.Name) == "" {
		return orchestrator.RegisterRequest{}, nsd.ErrNoServiceName
	}

	serviceType, err := parseAdvertiseType(c.Type)
	if err != nil {
		return orchestrator.RegisterRequest{}, err
	}

	if c.Port < 0 || c.Port > 65535 {
		return orchestrator.RegisterRequest{}, fmt.Errorf("invalid port %d", c.Port)
	}

	req := orchestrator.RegisterRequest{
		Name:       c.Name,
		Type:       serviceType,
		Port:       c.Port,
		Attributes: nsd.ParseTXT(c.Attrs),
	}

	if c.Host != "" {
		req.Host = net.ParseIP(c.Host)
		if req.Host == nil {
			return orchestrator.RegisterRequest{}, fmt.Errorf("invalid host address %q", c.Host)
		}
	}

	return req, nil
}

// parseAdvertiseType accepts the well-known types and any raw
// _name._tcp or _name._udp type.
func parseAdvertiseType(s string) (string, error) {
	if st, err := nsd.ParseServiceType(s); err == nil {
		return string(st), nil
	}

	raw := nsd.NormalizeType(s)
	labels := strings.Split(raw, ".")
	if len(labels) != 2 || len(labels[0]) < 2 || !strings.HasPrefix(labels[0], "_") || (labels[1] != "_tcp" && labels[1] != "_udp") {
		return "", fmt.Errorf("%w: %q", nsd.ErrUnknownServiceType, s)
	}

	return raw, nil
}
