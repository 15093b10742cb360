package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hex renders every byte as two hex digits followed by a space.
func Hex(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteString(fmt.Sprintf("%02x ", c))
	}
	return sb.String()
}

// Decimal interprets the given bytes as a big-endian unsigned number.
// Values that don't fit into 64 bits are rendered in hex instead.
func Decimal(b []byte) string {
	if len(b) > 8 {
		return strings.TrimSpace(Hex(b))
	}

	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return strconv.FormatUint(n, 10)
}

// Attributes renders TXT attributes as key:value lines sorted by key.
// Values are shown as decimal numbers, attributes without a value as
// key:null.
func Attributes(attrs map[string][]byte) string {
	return attributes(attrs, Decimal)
}

// AttributesHex is like Attributes but renders values as hex bytes.
func AttributesHex(attrs map[string][]byte) string {
	return attributes(attrs, func(b []byte) string {
		return strings.TrimSpace(Hex(b))
	})
}

func attributes(attrs map[string][]byte, valueFn func([]byte) string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v := attrs[k]
		if v == nil {
			lines = append(lines, k+":null")
			continue
		}
		lines = append(lines, k+":"+valueFn(v))
	}
	return strings.Join(lines, "\n")
}

// Marquee takes the given text and rotates it like a carousel
// through a fixed length string of maxLen. See tests for example.
func Marquee(text string, iteration int, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	out := make([]byte, maxLen)
	padded := fmt.Sprintf("%s%*s", text, maxLen, " ")
	for i := 0; i < maxLen; i++ {
		out[i] = padded[(i+iteration)%len(padded)]
	}
	return string(out)
}

// Pad right-pads or truncates text to exactly width bytes.
func Pad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(text) > width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}
