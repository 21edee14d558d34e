package main

import (
	"runtime"

	"github.com/urfave/cli/v2"
)

const (
	globalLogLevel = "log-level"
	globalVerbose  = "verbose"
)

var (
	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    globalLogLevel,
			Value:   "info",
			Usage:   "Minimum level of log messages: trace, debug, info, warn, error.",
			EnvVars: []string{"HTMLSTRIP_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:  globalVerbose,
			Value: false,
			Usage: "Whether to enable debug logs. Same as --log-level=debug.",
		},
	}
)

const (
	compactInPlace     = "in-place"
	compactConcurrency = "concurrency"
	compactBufferSize  = "buffer-size"
)

var (
	compactFlags = []cli.Flag{
		&cli.BoolFlag{
			Name:    compactInPlace,
			Aliases: []string{"w"},
			Usage:   "Rewrite the given files instead of writing to stdout.",
		},
		&cli.IntFlag{
			Name:  compactConcurrency,
			Value: runtime.GOMAXPROCS(0),
			Usage: "Number of files rewritten concurrently with --in-place.",
		},
		&cli.IntFlag{
			Name:  compactBufferSize,
			Value: 32 * 1024,
			Usage: "Size of the buffer input is read and compacted in.",
		},
	}
)

const (
	proxyListen   = "listen"
	proxyUpstream = "upstream"
	proxyConfig   = "config"
)

var (
	proxyFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    proxyListen,
			Value:   ":8080",
			Usage:   "TCP address to listen for requests on.",
			EnvVars: []string{"HTMLSTRIP_LISTEN"},
		},
		&cli.StringFlag{
			Name:     proxyUpstream,
			Usage:    "URL of the server whose responses are compacted.",
			EnvVars:  []string{"HTMLSTRIP_UPSTREAM"},
			Required: true,
		},
		&cli.StringFlag{
			Name: proxyConfig,
			Usage: "Path to a YAML file with per server and per location strip switches. \n" +
				"Without it every eligible response is compacted.",
			EnvVars: []string{"HTMLSTRIP_CONFIG"},
		},
	}
)
