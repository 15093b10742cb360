package wrap

import (
	"path/filepath"

	stdxdg "github.com/adrg/xdg"
)

// Xdger locates the files of an application in the XDG base directories.
type Xdger interface {
	// ConfigFile returns the path of name in the user's config directory.
	// Missing parent directories are created.
	ConfigFile(name string) (string, error)

	// SearchConfigFile returns the first existing file called name in the
	// user's or the system's config directories.
	SearchConfigFile(name string) (string, error)
}

// Xdg resolves file names below the directory App.
type Xdg struct {
	App string
}

func (x Xdg) ConfigFile(name string) (string, error) {
	return stdxdg.ConfigFile(filepath.Join(x.App, name))
}

func (x Xdg) SearchConfigFile(name string) (string, error) {
	return stdxdg.SearchConfigFile(filepath.Join(x.App, name))
}
