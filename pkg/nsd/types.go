package nsd

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceType is a DNS-SD service type like _airplay._tcp. Only the
// well-known types below can be browsed.
type ServiceType string

const (
	AirPlay   ServiceType = "_airplay._tcp"
	RAOP      ServiceType = "_raop._tcp"
	BenQShare ServiceType = "_benqshare._tcp"
	Miracast  ServiceType = "_display._tcp"
	HTTP      ServiceType = "_http._tcp"
)

var ErrUnknownServiceType = errors.New("unknown service type")

var serviceTypes = []struct {
	key   string
	label string
	typ   ServiceType
}{
	{key: "AIRPLAY", label: "AirPlay", typ: AirPlay},
	{key: "RAOP_TCP", label: "RAOP over TCP", typ: RAOP},
	{key: "BENQSHARE", label: "BenQ share", typ: BenQShare},
	{key: "MIRACAST", label: "Miracast", typ: Miracast},
	{key: "HTTP", label: "HTTP", typ: HTTP},
}

// DefaultServiceTypes are browsed if the user didn't select anything.
var DefaultServiceTypes = []ServiceType{AirPlay, RAOP}

// ServiceTypes returns all well-known service types in a stable order.
func ServiceTypes() []ServiceType {
	types := make([]ServiceType, len(serviceTypes))
	for i, st := range serviceTypes {
		types[i] = st.typ
	}
	return types
}

// ParseServiceType accepts the enumeration key (AIRPLAY), the label
// (AirPlay) or the raw type (_airplay._tcp, optionally with a trailing
// dot or the local domain) of a well-known service type.
func ParseServiceType(s string) (ServiceType, error) {
	raw := NormalizeType(s)
	for _, st := range serviceTypes {
		if strings.EqualFold(s, st.key) || strings.EqualFold(s, st.label) || raw == string(st.typ) {
			return st.typ, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
}

// Key returns the enumeration key, e.g. AIRPLAY.
func (t ServiceType) Key() string {
	for _, st := range serviceTypes {
		if st.typ == t {
			return st.key
		}
	}
	return strings.ToUpper(strings.Trim(string(t), "_."))
}

// Label returns a human-readable name, e.g. RAOP over TCP.
func (t ServiceType) Label() string {
	for _, st := range serviceTypes {
		if st.typ == t {
			return st.label
		}
	}
	return string(t)
}

func (t ServiceType) String() string {
	return string(t)
}

// NormalizeType strips trailing dots and the local domain from a
// service type, so _airplay._tcp.local. becomes _airplay._tcp.
func NormalizeType(s string) string {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
	s = strings.TrimSuffix(s, ".local")
	return s
}
