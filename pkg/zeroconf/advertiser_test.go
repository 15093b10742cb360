package zeroconf

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dennis-tra/mdnssearch/internal/mock"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

func printer() nsd.ServiceRecord {
	return nsd.ServiceRecord{
		Name:       "Office Printer",
		Type:       string(nsd.HTTP),
		HostName:   "printer.local.",
		Host:       net.ParseIP("192.0.2.9"),
		Port:       8080,
		Attributes: map[string][]byte{"path": []byte("/")},
	}
}

func collectRegistration(t *testing.T) (func(nsd.RegistrationEvent), func() nsd.RegistrationEvent) {
	events := make(chan nsd.RegistrationEvent, 10)
	handler := func(evt nsd.RegistrationEvent) {
		events <- evt
	}
	wait := func() nsd.RegistrationEvent {
		select {
		case evt := <-events:
			return evt
		case <-time.After(time.Second):
			require.Fail(t, "timed out waiting for registration event")
			return nil
		}
	}
	return handler, wait
}

func TestPlatform_Advertise_proxy(t *testing.T) {
	ctrl, m, p := setup(t)

	server := mock.NewMockZeroconfServer(ctrl)
	m.EXPECT().
		RegisterProxy("Office Printer", string(nsd.HTTP), nsd.DefaultDomain, 8080, "printer", []string{"192.0.2.9"}, []string{"path=/"}, gomock.Nil()).
		Return(server, nil).
		Times(1)

	handler, wait := collectRegistration(t)
	h, err := p.Advertise(printer(), handler)
	require.NoError(t, err)

	evt := wait()
	require.IsType(t, nsd.Registered{}, evt)
	assert.Equal(t, nsd.DefaultDomain, evt.(nsd.Registered).Record.Domain)

	server.EXPECT().Shutdown().Times(1)
	require.NoError(t, p.StopAdvertise(h))
	assert.IsType(t, nsd.Unregistered{}, wait())

	assert.ErrorIs(t, p.StopAdvertise(h), nsd.ErrUnknownHandle)
}

func TestPlatform_Advertise_localHost(t *testing.T) {
	ctrl, m, p := setup(t)

	rec := printer()
	rec.Host = nil
	rec.HostName = ""

	server := mock.NewMockZeroconfServer(ctrl)
	m.EXPECT().
		Register("Office Printer", string(nsd.HTTP), nsd.DefaultDomain, 8080, []string{"path=/"}, gomock.Nil()).
		Return(server, nil).
		Times(1)

	handler, wait := collectRegistration(t)
	_, err := p.Advertise(rec, handler)
	require.NoError(t, err)
	assert.IsType(t, nsd.Registered{}, wait())

	// Close shuts down remaining advertisements
	server.EXPECT().Shutdown().Times(1)
	p.Close()
	assert.IsType(t, nsd.Unregistered{}, wait())
}

func TestPlatform_Advertise_invalid(t *testing.T) {
	_, _, p := setup(t)

	_, err := p.Advertise(nsd.ServiceRecord{Type: string(nsd.HTTP)}, nil)
	assert.ErrorIs(t, err, nsd.ErrNoServiceName)

	_, err = p.Advertise(nsd.ServiceRecord{Name: "x"}, nil)
	assert.ErrorIs(t, err, nsd.ErrNoServiceType)
}

func TestPlatform_Advertise_registerFails(t *testing.T) {
	_, m, p := setup(t)

	m.EXPECT().
		RegisterProxy(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("missing port")).
		Times(1)

	handler, wait := collectRegistration(t)
	h, err := p.Advertise(printer(), handler)
	require.NoError(t, err)

	evt := wait()
	require.IsType(t, nsd.RegistrationFailed{}, evt)
	assert.EqualError(t, evt.(nsd.RegistrationFailed).Err, "missing port")

	assert.ErrorIs(t, p.StopAdvertise(h), nsd.ErrUnknownHandle)
}
