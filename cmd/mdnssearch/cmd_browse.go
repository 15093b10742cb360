package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	out "github.com/dennis-tra/mdnssearch/internal/log"
	"github.com/dennis-tra/mdnssearch/pkg/catalog"
	"github.com/dennis-tra/mdnssearch/pkg/config"
	"github.com/dennis-tra/mdnssearch/pkg/events"
	"github.com/dennis-tra/mdnssearch/pkg/term"
	"github.com/dennis-tra/mdnssearch/pkg/tui"
)

// browseCmd contains the `browse` sub-command configuration.
var browseCmd = &cli.Command{
	Name:      "browse",
	Usage:     "search for services in your local network",
	Aliases:   []string{"b"},
	Action:    browseAction,
	ArgsUsage: "[TYPE...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        "plain",
			Aliases:     []string{"p", "browse.plain" /* config file key*/},
			EnvVars:     []string{"MDNSSEARCH_PLAIN"},
			Usage:       "print every catalog change instead of starting the interactive view",
			Destination: &config.Browse.Plain,
			Value:       config.Browse.Plain,
		},
	},
	Description: `The browse subcommand sends out multicast DNS queries for the
given service types and resolves every service instance it finds.
Types can be given by their key (AIRPLAY), label (AirPlay) or as
raw DNS-SD type (_airplay._tcp). Run "mdnssearch types" for the
list of supported types. At most five types can be browsed at
once. Without arguments AirPlay and RAOP services are browsed.

A found service is resolved until it succeeds, pausing between
attempts. Services that disappear from the network are removed
from the list.

In the interactive view press r to restart the discovery and q
to quit.`,
}

// browseAction contains the logic for the `browse` subcommand.
func browseAction(cCtx *cli.Context) error {
	types, err := config.ParseTypes(cCtx.Args().Slice())
	if err != nil {
		return err
	}

	orch, p, err := newOrchestrator(config.Global)
	if err != nil {
		return err
	}
	defer p.Close()
	defer orch.Close()

	sub := orch.Catalog().Subscribe()
	defer sub.Close()

	serviceTypes := make([]string, len(types))
	for i, st := range types {
		serviceTypes[i] = string(st)
	}

	if err = orch.StartDiscover(serviceTypes...); err != nil {
		if len(orch.DiscoveringTypes()) == 0 {
			return fmt.Errorf("start discovery: %w", err)
		}
		log.WithError(err).Warnln("Some service types couldn't be browsed")
	}

	if config.Browse.Plain {
		return browsePlain(cCtx.Context, sub)
	}

	program := tea.NewProgram(
		tui.New(orch, sub, types),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterFn),
	)

	_, err = program.Run()
	return err
}

func browsePlain(ctx context.Context, sub *events.Subscription[catalog.Snapshot]) error {
	if config.Global.LogFile == "" {
		log.SetOutput(os.Stderr)
	}

	ctx, stop := term.Wait(ctx)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-sub.Events():
			if !ok {
				return nil
			}
			printSnapshot(snapshot)
		}
	}
}

func printSnapshot(snapshot catalog.Snapshot) {
	out.Infoln(out.Separator())
	out.Infof("%s %d services\n", out.Bold("Catalog:"), snapshot.Len())

	for _, rec := range snapshot.Records {
		out.Infof("  %s %s %s\n", out.Bold(rec.Name), rec.Type, out.Green(rec.Endpoint()))

		if maddr, err := rec.Multiaddr(); err == nil {
			out.Infof("    %s\n", out.Gray(maddr.String()))
		}

		if rec.HostName != "" {
			out.Infof("    host: %s\n", rec.HostName)
		}

		attrs := rec.AttributesText()
		if attrs == "" {
			continue
		}
		for _, line := range strings.Split(attrs, "\n") {
			out.Infof("    %s\n", line)
		}
	}
}
