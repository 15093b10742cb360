package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	out "github.com/dennis-tra/mdnssearch/internal/log"
	"github.com/dennis-tra/mdnssearch/pkg/config"
	"github.com/dennis-tra/mdnssearch/pkg/orchestrator"
	"github.com/dennis-tra/mdnssearch/pkg/register"
	"github.com/dennis-tra/mdnssearch/pkg/term"
)

// advertiseCmd contains the `advertise` sub-command configuration.
var advertiseCmd = &cli.Command{
	Name:    "advertise",
	Usage:   "make a service known in your local network",
	Aliases: []string{"a"},
	Action:  advertiseAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			EnvVars:     []string{"MDNSSEARCH_NAME"},
			Usage:       "the service instance `NAME`",
			Destination: &config.Advertise.Name,
			Value:       config.Advertise.Name,
			DefaultText: "mdnssearch-<random>",
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			EnvVars:     []string{"MDNSSEARCH_TYPE"},
			Usage:       "a supported service type or any raw _name._tcp type",
			Destination: &config.Advertise.Type,
			Value:       config.Advertise.Type,
		},
		&cli.StringFlag{
			Name:        "host",
			EnvVars:     []string{"MDNSSEARCH_HOST"},
			Usage:       "the IP address to advertise, defaults to all local addresses",
			Destination: &config.Advertise.Host,
			Value:       config.Advertise.Host,
		},
		&cli.IntFlag{
			Name:        "port",
			EnvVars:     []string{"MDNSSEARCH_PORT"},
			Usage:       "the port to advertise",
			Destination: &config.Advertise.Port,
			Value:       config.Advertise.Port,
		},
		&cli.StringSliceFlag{
			Name:    "attr",
			EnvVars: []string{"MDNSSEARCH_ATTRS"},
			Usage:   "a key=value TXT attribute, can be given multiple times",
		},
	},
	Description: `The advertise subcommand registers a service instance in your
local network until it is interrupted. Other devices browsing
for the service type will find it.`,
}

// advertiseAction contains the logic for the `advertise` subcommand.
func advertiseAction(cCtx *cli.Context) error {
	if config.Global.LogFile == "" {
		log.SetOutput(os.Stderr)
	}

	config.Advertise.Attrs = cCtx.StringSlice("attr")
	log.Debugln("Advertise configuration:", config.Advertise.String())

	req, err := config.Advertise.RegisterRequest()
	if err != nil {
		return err
	}

	orch, p, err := newOrchestrator(config.Global)
	if err != nil {
		return err
	}
	defer p.Close()
	defer orch.Close()

	if err = orch.StartRegister(req); err != nil {
		return fmt.Errorf("start registration: %w", err)
	}

	ctx, stop := term.Wait(cCtx.Context)
	defer stop()

	out.Infof("Registering %s as %s...\n", out.Bold(req.Name), req.Type)

	err = awaitRegistration(ctx, orch, req.Name)
	if errors.Is(err, context.Canceled) {
		orch.StopAll()
		return nil
	} else if err != nil {
		return err
	}

	out.Infof("%s (cancel with ctrl+c)\n", out.Green("Registered"))

	<-ctx.Done()

	orch.StopAll()
	out.Infoln("Unregistered")

	return nil
}

// awaitRegistration polls the state of the registration until it either
// succeeded or failed.
func awaitRegistration(ctx context.Context, orch *orchestrator.Orchestrator, name string) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		reg, found := orch.Registration(name)
		switch {
		case !found:
			return fmt.Errorf("registration %q not found", name)
		case reg.State == register.StateRegistered:
			return nil
		case reg.State == register.StateIdle && reg.Err != nil:
			return fmt.Errorf("register %q: %w", name, reg.Err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
