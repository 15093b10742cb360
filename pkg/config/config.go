package config

import (
	"github.com/pkg/errors"

	"github.com/dennis-tra/mdnssearch/internal/wrap"
)

const Prefix = "mdnssearch"

// configFile is the name of the YAML configuration file inside the
// application's XDG config directory.
const configFile = "config.yaml"

// for testing
var appXdg wrap.Xdger = wrap.Xdg{App: Prefix}

// DefaultPath returns the location of the configuration file. An
// existing file in any XDG config directory wins. Otherwise, the path in
// the user's config directory is returned and missing parent directories
// are created.
func DefaultPath() (string, error) {
	if path, err := appXdg.SearchConfigFile(configFile); err == nil {
		return path, nil
	}

	path, err := appXdg.ConfigFile(configFile)
	if err != nil {
		return "", errors.Wrap(err, "resolve config file path")
	}
	return path, nil
}
