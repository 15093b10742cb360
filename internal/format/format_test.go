package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "", Hex(nil))
	assert.Equal(t, "00 ff 10 ", Hex([]byte{0x00, 0xff, 0x10}))
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, "0"},
		{[]byte{}, "0"},
		{[]byte{0x01}, "1"},
		{[]byte{0x01, 0x00}, "256"},
		{[]byte("1"), "49"},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, "18446744073709551615"},
		{[]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, "01 02 03 04 05 06 07 08 09"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Decimal %v", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, Decimal(tt.in))
		})
	}
}

func TestAttributes(t *testing.T) {
	attrs := map[string][]byte{
		"vv":  {0x02},
		"am":  []byte("AB"),
		"bcn": nil,
	}

	assert.Equal(t, "am:16706\nbcn:null\nvv:2", Attributes(attrs))
	assert.Equal(t, "am:41 42\nbcn:null\nvv:02", AttributesHex(attrs))
	assert.Equal(t, "", Attributes(nil))
}

func TestMarquee(t *testing.T) {
	tests := []struct {
		text      string
		iteration int
		maxLen    int
		want      string
	}{
		{"pcp.go", 0, 3, "pcp"},
		{"pcp.go", 2, 3, "p.g"},
		{"pcp.go", 6, 3, "   "},
		{"pcp.go", 8, 3, " pc"},
		{"Living Room", 0, 16, "Living Room"},
		{"", 0, 16, ""},
		{"a-really-long-service-name", 0, 16, "a-really-long-se"},
		{"a-really-long-service-name", 1, 16, "-really-long-ser"},
	}

	for _, tt := range tests {
		run := fmt.Sprintf("Marquee %s (i: %d, len: %d)", tt.text, tt.iteration, tt.maxLen)
		t.Run(run, func(t *testing.T) {
			assert.Equal(t, tt.want, Marquee(tt.text, tt.iteration, tt.maxLen))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", Pad("ab", 4))
	assert.Equal(t, "abc", Pad("abcdef", 3))
	assert.Equal(t, "", Pad("abc", 0))
}
