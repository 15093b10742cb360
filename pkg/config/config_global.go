package config

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/discovery"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

const (
	BackendMDNS     = "mdns"
	BackendZeroconf = "zeroconf"
)

var Global = GlobalConfig{
	Version:        getVersion(),
	LogFile:        "",
	LogLevel:       int(logrus.InfoLevel),
	LogAppend:      false,
	Backend:        BackendMDNS,
	Interface:      "",
	Domain:         nsd.DefaultDomain,
	RetryDelay:     discovery.RetryDelay,
	QueryInterval:  10 * time.Second,
	QueryTimeout:   2 * time.Second,
	ResolveTimeout: 3 * time.Second,
	LostAfter:      30 * time.Second,
	TelemetryHost:  "localhost",
	TelemetryPort:  0,
	ConfigFile:     "",
}

type GlobalConfig struct {
	// Version holds the fully qualified version string in the form: v0.1.0-d4aeaa2
	Version string `json:"-"`

	// LogFile is the location where logs should be written to
	LogFile string

	// LogLevel indicates which severity levels should be written to LogFile
	LogLevel int

	// LogAppend indicates whether logs should be appended to LogFile
	LogAppend bool

	// Backend selects the mDNS implementation: mdns or zeroconf
	Backend string

	// Interface restricts multicast traffic to the named network interface
	Interface string

	// Domain is the DNS-SD browsing and registration domain
	Domain string

	// RetryDelay is the pause between failed resolve attempts
	RetryDelay time.Duration

	// QueryInterval is the pause between two browse queries
	QueryInterval time.Duration

	// QueryTimeout bounds a single browse query
	QueryTimeout time.Duration

	// ResolveTimeout bounds a single resolve attempt
	ResolveTimeout time.Duration

	// LostAfter is the duration after which a service that wasn't seen
	// in any query is reported as lost
	LostAfter time.Duration

	// TelemetryHost holds the value at which prometheus metrics could be extracted
	TelemetryHost string

	// TelemetryPort holds the port at which prometheus metrics can be extracted
	TelemetryPort int

	// ConfigFile is the file from which the configuration is read
	ConfigFile string
}

func (c *GlobalConfig) String() string {
	data, _ := json.Marshal(c)
	return string(data)
}

func (c *GlobalConfig) Validate() error {
	if c.Backend != BackendMDNS && c.Backend != BackendZeroconf {
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendMDNS, BackendZeroconf)
	}

	if c.LogLevel < int(logrus.PanicLevel) || c.LogLevel > int(logrus.TraceLevel) {
		return fmt.Errorf("log level must be between %d and %d", logrus.PanicLevel, logrus.TraceLevel)
	}

	if c.RetryDelay <= 0 {
		return fmt.Errorf("resolve retry delay must be positive")
	}

	if c.QueryInterval <= 0 {
		return fmt.Errorf("query interval must be positive")
	}

	if c.QueryTimeout <= 0 || c.ResolveTimeout <= 0 {
		return fmt.Errorf("query and resolve timeouts must be positive")
	}

	if c.LostAfter < c.QueryInterval {
		return fmt.Errorf("lost-after (%s) must not be shorter than the query interval (%s)", c.LostAfter, c.QueryInterval)
	}

	return nil
}

// NetInterface looks up the configured network interface. It returns
// nil if no interface was configured.
func (c *GlobalConfig) NetInterface() (*net.Interface, error) {
	if c.Interface == "" {
		return nil, nil
	}

	iface, err := net.InterfaceByName(c.Interface)
	if err != nil {
		return nil, fmt.Errorf("network interface %q: %w", c.Interface, err)
	}

	return iface, nil
}
