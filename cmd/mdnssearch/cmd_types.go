package main

import (
	"github.com/urfave/cli/v2"

	"github.com/dennis-tra/mdnssearch/internal/log"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

// typesCmd lists the service types that can be browsed.
var typesCmd = &cli.Command{
	Name:    "types",
	Usage:   "list the service types that can be browsed",
	Aliases: []string{"t"},
	Action:  typesAction,
}

func typesAction(cCtx *cli.Context) error {
	for _, st := range nsd.ServiceTypes() {
		log.Infof("%-10s %-16s %s\n", st.Key(), st.String(), st.Label())
	}
	return nil
}
