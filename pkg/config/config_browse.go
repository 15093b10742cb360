package config

import (
	"fmt"
	"strings"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

// MaxTypes is the maximum number of service types that can be browsed
// at the same time.
const MaxTypes = 5

type BrowseConfig struct {
	// Plain prints every catalog change instead of starting the terminal UI
	Plain bool
}

func (c BrowseConfig) String() string {
	return fmt.Sprintf("Plain=%v", c.Plain)
}

var Browse = BrowseConfig{
	Plain: false,
}

// ParseTypes converts command line arguments into well-known service
// types. Duplicates are dropped. Without arguments the default types are
// returned.
func ParseTypes(args []string) ([]nsd.ServiceType, error) {
	if len(args) == 0 {
		return append([]nsd.ServiceType{}, nsd.DefaultServiceTypes...), nil
	}

	seen := map[nsd.ServiceType]struct{}{}
	var types []nsd.ServiceType
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			st, err := nsd.ParseServiceType(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}

			if _, found := seen[st]; found {
				continue
			}
			seen[st] = struct{}{}
			types = append(types, st)
		}
	}

	if len(types) > MaxTypes {
		return nil, fmt.Errorf("at most %d service types can be browsed at once", MaxTypes)
	}

	if len(types) == 0 {
		return append([]nsd.ServiceType{}, nsd.DefaultServiceTypes...), nil
	}

	return types, nil
}
