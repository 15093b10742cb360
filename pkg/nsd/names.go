package nsd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// InstanceName extracts the instance part of a fully qualified service
// instance name. For "Living Room._airplay._tcp.local." and the service
// type _airplay._tcp it returns "Living Room".
func InstanceName(fqdn, serviceType, domain string) (string, error) {
	if domain == "" {
		domain = DefaultDomain
	}

	suffix := dns.Fqdn(NormalizeType(serviceType) + "." + strings.Trim(domain, "."))
	name := dns.Fqdn(fqdn)

	if !dns.IsSubDomain(suffix, name) {
		return "", fmt.Errorf("%q is not an instance of %q", fqdn, suffix)
	}

	labels := dns.SplitDomainName(name)
	instanceLabels := len(labels) - dns.CountLabel(suffix)
	if instanceLabels <= 0 {
		return "", fmt.Errorf("%q has no instance name", fqdn)
	}

	for i := 0; i < instanceLabels; i++ {
		labels[i] = unescapeLabel(labels[i])
	}

	// some responders don't escape dots in instance names
	return strings.Join(labels[:instanceLabels], "."), nil
}

func unescapeLabel(label string) string {
	if !strings.Contains(label, `\`) {
		return label
	}

	var sb strings.Builder
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c != '\\' || i+1 >= len(label) {
			sb.WriteByte(c)
			continue
		}

		// \DDD
		if i+3 < len(label) && isDigit(label[i+1]) && isDigit(label[i+2]) && isDigit(label[i+3]) {
			if n, err := strconv.Atoi(label[i+1 : i+4]); err == nil && n <= 255 {
				sb.WriteByte(byte(n))
				i += 3
				continue
			}
		}

		sb.WriteByte(label[i+1])
		i += 1
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
