package nsd

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRecord_SameIdentity(t *testing.T) {
	a := ServiceRecord{Name: "Living Room", Type: "_airplay._tcp", Host: net.ParseIP("192.0.2.5"), Port: 7000}
	b := ServiceRecord{Name: "Living Room", Type: "_airplay._tcp", Host: net.ParseIP("192.0.2.6"), Port: 7001}
	c := ServiceRecord{Name: "Living Room", Type: "_raop._tcp"}
	d := ServiceRecord{Name: "Kitchen", Type: "_airplay._tcp"}

	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameIdentity(c))
	assert.False(t, a.SameIdentity(d))
	assert.Equal(t, Identity{Name: "Living Room", Type: "_airplay._tcp"}, a.Identity())
}

func TestServiceRecord_Resolved(t *testing.T) {
	assert.False(t, ServiceRecord{Name: "a", Type: "_http._tcp"}.Resolved())
	assert.False(t, ServiceRecord{Host: net.ParseIP("192.0.2.5")}.Resolved())
	assert.True(t, ServiceRecord{Host: net.ParseIP("192.0.2.5"), Port: 80}.Resolved())
}

func TestServiceRecord_Clone(t *testing.T) {
	rec := ServiceRecord{
		Name:       "Living Room",
		Type:       "_airplay._tcp",
		Host:       net.ParseIP("192.0.2.5").To4(),
		Port:       7000,
		Attributes: map[string][]byte{"model": []byte("AppleTV"), "flag": nil},
	}

	clone := rec.Clone()
	assert.Equal(t, rec, clone)

	clone.Host[0] = 10
	clone.Attributes["model"][0] = 'X'
	clone.Attributes["new"] = []byte("1")

	assert.Equal(t, "192.0.2.5", rec.Host.String())
	assert.Equal(t, "AppleTV", string(rec.Attributes["model"]))
	assert.NotContains(t, rec.Attributes, "new")
}

func TestServiceRecord_Endpoint(t *testing.T) {
	rec := ServiceRecord{Host: net.ParseIP("192.0.2.5"), Port: 7000}
	assert.Equal(t, "192.0.2.5:7000", rec.Endpoint())
	assert.Equal(t, "", ServiceRecord{}.Endpoint())

	maddr, err := rec.Multiaddr()
	require.NoError(t, err)
	assert.Equal(t, "/ip4/192.0.2.5/tcp/7000", maddr.String())

	_, err = ServiceRecord{}.Multiaddr()
	assert.Error(t, err)
}

func TestServiceRecord_TXT(t *testing.T) {
	rec := ServiceRecord{Attributes: map[string][]byte{"b": []byte("2"), "a": []byte("1"), "c": nil}}
	txt := rec.TXT()
	assert.Equal(t, []string{"a=1", "b=2", "c"}, txt)
	assert.Equal(t, rec.Attributes, ParseTXT(txt))
}

func TestParseTXT(t *testing.T) {
	attrs := ParseTXT([]string{"a=1", "a=2", "=x", "flag", "empty=", "eq=a=b"})
	assert.Equal(t, map[string][]byte{
		"a":     []byte("1"),
		"flag":  nil,
		"empty": {},
		"eq":    []byte("a=b"),
	}, attrs)

	assert.Nil(t, ParseTXT(nil))
}

func TestServiceRecord_AttributesText(t *testing.T) {
	rec := ServiceRecord{Attributes: map[string][]byte{"vv": {0x02}, "ch": {0x01, 0x00}}}
	assert.Equal(t, "ch:256\nvv:2", rec.AttributesText())
	assert.Equal(t, "ch:01 00\nvv:02", rec.AttributesHex())
}
