package nsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceName(t *testing.T) {
	tests := []struct {
		name   string
		fqdn   string
		svc    string
		domain string
		want   string
	}{
		{name: "plain", fqdn: "Living Room._airplay._tcp.local.", svc: "_airplay._tcp", domain: "local.", want: "Living Room"},
		{name: "no trailing dot", fqdn: "Kitchen._raop._tcp.local", svc: "_raop._tcp", domain: "local", want: "Kitchen"},
		{name: "default domain", fqdn: "Kitchen._raop._tcp.local.", svc: "_raop._tcp", domain: "", want: "Kitchen"},
		{name: "escaped dot", fqdn: `My\.Box._http._tcp.local.`, svc: "_http._tcp", domain: "local.", want: "My.Box"},
		{name: "unescaped dot", fqdn: "My.Box._http._tcp.local.", svc: "_http._tcp", domain: "local.", want: "My.Box"},
		{name: "decimal escape", fqdn: `A\032B._http._tcp.local.`, svc: "_http._tcp", domain: "local.", want: "A B"},
		{name: "case insensitive suffix", fqdn: "TV._AirPlay._TCP.local.", svc: "_airplay._tcp", domain: "local.", want: "TV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InstanceName(tt.fqdn, tt.svc, tt.domain)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstanceName_errors(t *testing.T) {
	_, err := InstanceName("Living Room._raop._tcp.local.", "_airplay._tcp", "local.")
	assert.Error(t, err)

	_, err = InstanceName("_airplay._tcp.local.", "_airplay._tcp", "local.")
	assert.Error(t, err)
}
