package nsd

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"

	"github.com/dennis-tra/mdnssearch/internal/format"
)

// DefaultDomain is the multicast DNS domain records live in
// if nothing else was specified.
const DefaultDomain = "local."

// Identity is the part of a ServiceRecord that decides whether two
// records describe the same service. Host and port are deliberately not
// part of it, so a service that changes its address keeps its identity.
type Identity struct {
	Name string
	Type string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s.%s", id.Name, id.Type)
}

// ServiceRecord describes a single DNS-SD service instance. Records
// that were only found but not yet resolved lack Host and Port.
type ServiceRecord struct {
	Name     string
	Type     string
	Domain   string
	HostName string
	Host     net.IP
	Port     int

	// Attributes holds the TXT record key/value pairs. A nil value
	// denotes a boolean attribute without a value.
	Attributes map[string][]byte
}

func (r ServiceRecord) Identity() Identity {
	return Identity{Name: r.Name, Type: r.Type}
}

// SameIdentity reports whether both records share name and type.
func (r ServiceRecord) SameIdentity(other ServiceRecord) bool {
	return r.Identity() == other.Identity()
}

// Resolved reports whether the record carries an endpoint.
func (r ServiceRecord) Resolved() bool {
	return r.Host != nil && r.Port > 0
}

// Clone returns a deep copy of the record.
func (r ServiceRecord) Clone() ServiceRecord {
	c := r
	if r.Host != nil {
		c.Host = make(net.IP, len(r.Host))
		copy(c.Host, r.Host)
	}
	if r.Attributes != nil {
		c.Attributes = make(map[string][]byte, len(r.Attributes))
		for k, v := range r.Attributes {
			if v == nil {
				c.Attributes[k] = nil
				continue
			}
			c.Attributes[k] = append([]byte{}, v...)
		}
	}
	return c
}

// Endpoint returns host:port or an empty string for unresolved records.
func (r ServiceRecord) Endpoint() string {
	if !r.Resolved() {
		return ""
	}
	return net.JoinHostPort(r.Host.String(), strconv.Itoa(r.Port))
}

// Multiaddr returns the endpoint of the record as a TCP multiaddress.
func (r ServiceRecord) Multiaddr() (ma.Multiaddr, error) {
	if !r.Resolved() {
		return nil, fmt.Errorf("record %s is not resolved", r.Identity())
	}
	return manet.FromNetAddr(&net.TCPAddr{IP: r.Host, Port: r.Port})
}

// AttributesText renders the attributes in a human-readable form, one
// key:value pair per line, values interpreted as big-endian numbers.
func (r ServiceRecord) AttributesText() string {
	return format.Attributes(r.Attributes)
}

// AttributesHex renders the attributes with hex encoded values.
func (r ServiceRecord) AttributesHex() string {
	return format.AttributesHex(r.Attributes)
}

// TXT converts the attributes to DNS-SD TXT strings sorted by key.
func (r ServiceRecord) TXT() []string {
	keys := make([]string, 0, len(r.Attributes))
	for k := range r.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	txt := make([]string, 0, len(keys))
	for _, k := range keys {
		v := r.Attributes[k]
		if v == nil {
			txt = append(txt, k)
			continue
		}
		txt = append(txt, k+"="+string(v))
	}
	return txt
}

// ParseTXT is the inverse of TXT. Keys are unique, the first occurrence
// wins as mandated by RFC 6763 section 6.4.
func ParseTXT(txt []string) map[string][]byte {
	if len(txt) == 0 {
		return nil
	}

	attrs := make(map[string][]byte, len(txt))
	for _, field := range txt {
		key, value, hasValue := strings.Cut(field, "=")
		if key == "" {
			continue
		}
		if _, found := attrs[key]; found {
			continue
		}
		if !hasValue {
			attrs[key] = nil
			continue
		}
		attrs[key] = []byte(value)
	}
	return attrs
}
