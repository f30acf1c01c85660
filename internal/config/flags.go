package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d state store DSN
//	-driver state store driver (postgres, sqlite, memory)
//	-c/-config json file path with configs
//	-delimiter combined-backend id delimiter
//	-conflict-policy "server" or "client"
//	-cutoff-days content restriction window in days
//	-truncation-size default body truncation in bytes
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-ping-interval change poller period (0 disables)
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var storeDSN string
	var storeDriver string
	var jsonConfigPath string
	var delimiter string
	var conflictPolicy string
	var cutoffDays int
	var truncationSize int
	var requestTimeout time.Duration
	var pingInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&storeDSN, "d", "", "State store DSN")
	flag.StringVar(&storeDriver, "driver", "", "State store driver")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&delimiter, "delimiter", "", "Combined backend id delimiter")
	flag.StringVar(&conflictPolicy, "conflict-policy", "", "Conflict policy: server or client")
	flag.IntVar(&cutoffDays, "cutoff-days", 0, "Content restriction window in days")
	flag.IntVar(&truncationSize, "truncation-size", 0, "Default body truncation in bytes")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s, 1m)")
	flag.DurationVar(&pingInterval, "ping-interval", 0, "Change poller period")

	flag.Parse()

	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Driver: storeDriver,
			DSN:    storeDSN,
		},
		Sync: Sync{
			Delimiter:      delimiter,
			ConflictPolicy: conflictPolicy,
			CutoffDays:     cutoffDays,
			TruncationSize: truncationSize,
		},
		Workers: Workers{
			PingInterval: pingInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
