package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	out "github.com/dennis-tra/mdnssearch/internal/log"
	"github.com/dennis-tra/mdnssearch/pkg/catalog"
	"github.com/dennis-tra/mdnssearch/pkg/config"
	"github.com/dennis-tra/mdnssearch/pkg/mdns"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
	"github.com/dennis-tra/mdnssearch/pkg/zeroconf"
)

func TestNewPlatform(t *testing.T) {
	tests := []struct {
		backend string
		want    interface{}
		wantErr bool
	}{
		{backend: config.BackendMDNS, want: &mdns.Platform{}},
		{backend: config.BackendZeroconf, want: &zeroconf.Platform{}},
		{backend: "avahi", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Global
			cfg.Backend = tt.backend

			p, err := newPlatform(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer p.Close()
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestNewPlatform_unknownInterface(t *testing.T) {
	cfg := config.Global
	cfg.Interface = "does-not-exist0"

	_, err := newPlatform(cfg)
	assert.Error(t, err)
}

func TestPrintSnapshot(t *testing.T) {
	orig := out.Out
	defer func() { out.Out = orig }()

	var buf bytes.Buffer
	out.Out = &buf

	printSnapshot(catalog.Snapshot{
		Version: 3,
		Records: []nsd.ServiceRecord{
			{
				Name:       "Living Room",
				Type:       string(nsd.AirPlay),
				HostName:   "appletv.local.",
				Host:       net.ParseIP("192.0.2.5"),
				Port:       7000,
				Attributes: map[string][]byte{"vv": {0x02}},
			},
		},
	})

	printed := buf.String()
	assert.Contains(t, printed, "1 services")
	assert.Contains(t, printed, "Living Room")
	assert.Contains(t, printed, "192.0.2.5:7000")
	assert.Contains(t, printed, "/ip4/192.0.2.5/tcp/7000")
	assert.Contains(t, printed, "host: appletv.local.")
	assert.Contains(t, printed, "vv:2")
}
