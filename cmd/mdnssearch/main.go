package main

import (
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"reflect"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"gopkg.in/yaml.v3"

	"github.com/dennis-tra/mdnssearch/pkg/config"
)

// a handle to the file to log to in case the log-file flag is set
var logFile io.WriteCloser

func main() {
	configPath, err := config.DefaultPath()
	if err != nil {
		log.WithError(err).Warningln("Failed to initialize config file")
	}

	app := &cli.App{
		Name:    "mdnssearch",
		Usage:   "browse and advertise DNS-SD services in your local network",
		Version: config.Global.Version,
		Commands: []*cli.Command{
			typesCmd,
			browseCmd,
			advertiseCmd,
		},
		Before: beforeFunc,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				EnvVars:     []string{"MDNSSEARCH_CONFIG_FILE"},
				Usage:       "yaml config `FILE` name",
				Destination: &config.Global.ConfigFile,
				Value:       configPath,
			},
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "log-file",
				Aliases:     []string{"log.file" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_LOG_FILE"},
				Usage:       "writes log output to `FILE`",
				Destination: &config.Global.LogFile,
				Value:       config.Global.LogFile,
			}),
			altsrc.NewBoolFlag(&cli.BoolFlag{
				Name:        "log-append",
				Aliases:     []string{"log.append" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_LOG_APPEND"},
				Usage:       "append to log output instead of overwriting",
				Destination: &config.Global.LogAppend,
				Value:       config.Global.LogAppend,
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:        "log-level",
				Aliases:     []string{"log.level" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_LOG_LEVEL"},
				Usage:       "a value from 0 (least verbose) to 6 (most verbose)",
				Destination: &config.Global.LogLevel,
				Value:       config.Global.LogLevel,
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "backend",
				Aliases:     []string{"b"},
				EnvVars:     []string{"MDNSSEARCH_BACKEND"},
				Usage:       "the multicast DNS implementation to use: mdns or zeroconf",
				Destination: &config.Global.Backend,
				Value:       config.Global.Backend,
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "interface",
				Aliases:     []string{"i"},
				EnvVars:     []string{"MDNSSEARCH_INTERFACE"},
				Usage:       "restrict multicast traffic to the network interface `NAME`",
				Destination: &config.Global.Interface,
				Value:       config.Global.Interface,
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "domain",
				EnvVars:     []string{"MDNSSEARCH_DOMAIN"},
				Usage:       "the DNS-SD domain to browse and register in",
				Destination: &config.Global.Domain,
				Value:       config.Global.Domain,
			}),
			altsrc.NewDurationFlag(&cli.DurationFlag{
				Name:        "resolve-retry-delay",
				Aliases:     []string{"resolve.retryDelay" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_RESOLVE_RETRY_DELAY"},
				Usage:       "pause between failed attempts to resolve a found service",
				Destination: &config.Global.RetryDelay,
				Value:       config.Global.RetryDelay,
			}),
			altsrc.NewDurationFlag(&cli.DurationFlag{
				Name:        "resolve-timeout",
				Aliases:     []string{"resolve.timeout" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_RESOLVE_TIMEOUT"},
				Usage:       "how long a single resolve attempt may take",
				Destination: &config.Global.ResolveTimeout,
				Value:       config.Global.ResolveTimeout,
			}),
			altsrc.NewDurationFlag(&cli.DurationFlag{
				Name:        "query-interval",
				Aliases:     []string{"query.interval" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_QUERY_INTERVAL"},
				Usage:       "pause between two browse queries",
				Destination: &config.Global.QueryInterval,
				Value:       config.Global.QueryInterval,
			}),
			altsrc.NewDurationFlag(&cli.DurationFlag{
				Name:        "query-timeout",
				Aliases:     []string{"query.timeout" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_QUERY_TIMEOUT"},
				Usage:       "how long a single browse query collects answers",
				Destination: &config.Global.QueryTimeout,
				Value:       config.Global.QueryTimeout,
			}),
			altsrc.NewDurationFlag(&cli.DurationFlag{
				Name:        "lost-after",
				Aliases:     []string{"query.lostAfter" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_LOST_AFTER"},
				Usage:       "report a service as lost if it wasn't seen for this long",
				Destination: &config.Global.LostAfter,
				Value:       config.Global.LostAfter,
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "telemetry-host",
				Aliases:     []string{"telemetry.host" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_TELEMETRY_HOST"},
				Usage:       "network address for prometheus and pprof to bind to. Set port to activate telemetry.",
				Destination: &config.Global.TelemetryHost,
				Value:       config.Global.TelemetryHost,
				Hidden:      true,
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:        "telemetry-port",
				Aliases:     []string{"telemetry.port" /* config file key*/},
				EnvVars:     []string{"MDNSSEARCH_TELEMETRY_PORT"},
				Usage:       "port for prometheus and pprof to listen on. Set to activate telemetry.",
				Destination: &config.Global.TelemetryPort,
				Value:       config.Global.TelemetryPort,
				Hidden:      true,
			}),
		},
		EnableBashCompletion: true,
	}

	err = app.Run(os.Args)

	if logFile != nil {
		log.Debugln("Closing log file.")
		if err := logFile.Close(); err != nil {
			fmt.Printf("error closing log file: %s\n", err)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func beforeFunc(cCtx *cli.Context) error {
	if _, err := os.Stat(config.Global.ConfigFile); err == nil {
		yamlSrc := altsrc.NewYamlSourceFromFlagFunc("config")
		err := altsrc.InitInputSourceWithContext(cCtx.App.Flags, yamlSrc)(cCtx)
		if err != nil {
			return fmt.Errorf("init yaml input src: %w", err)
		}
	}

	if err := config.Global.Validate(); err != nil {
		return err
	}

	log.SetLevel(log.Level(config.Global.LogLevel))

	if config.Global.LogFile == "" {
		log.SetOutput(io.Discard)
	} else {
		flags := os.O_WRONLY | os.O_CREATE
		if config.Global.LogAppend {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}

		var err error
		logFile, err = os.OpenFile(config.Global.LogFile, flags, 0o644)
		if err != nil {
			return fmt.Errorf("open log file at %s: %w", config.Global.LogFile, err)
		}

		log.SetOutput(logFile)
	}

	// the hashicorp mdns package logs through the standard library logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.StandardLogger().WriterLevel(log.DebugLevel))

	data, _ := yaml.Marshal(config.Global)
	log.Debugln("Configuration:\n" + string(data))

	if config.Global.TelemetryPort != 0 {
		go metricsListenAndServe(config.Global.TelemetryHost, config.Global.TelemetryPort)
	}

	return nil
}

func metricsListenAndServe(host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.WithField("addr", addr).Debugln("Starting telemetry server")
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.WithError(err).Warningln("Error serving telemetry")
	}
}

func filterFn(m tea.Model, msg tea.Msg) tea.Msg {
	batch, ok := msg.(tea.BatchMsg)
	if ok {
		names := []string{}
		for _, cmd := range batch {
			names = append(names, runtime.FuncForPC(reflect.ValueOf(cmd).Pointer()).Name())
		}
		log.WithField("size", len(batch)).WithField("batch", names).Tracef("tea filter: %T\n", msg)
	} else {
		log.Tracef("tea filter: %T\n", msg)
	}

	return msg
}
