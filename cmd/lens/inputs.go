package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tinytelemetry/lens/internal/logsource"
	"github.com/tinytelemetry/lens/internal/tcpserver"
)

// openSources builds the configured line inputs. An enabled TCP listener
// that cannot bind is a hard error; stdin joins only when withStdin is set
// (data piped in).
func openSources(ctx context.Context, cfg appConfig, withStdin bool) ([]logsource.LogSource, error) {
	var sources []logsource.LogSource

	if cfg.TCPEnabled {
		server := tcpserver.NewServer(cfg.TCPAddr)
		if err := server.Start(); err != nil {
			return nil, fmt.Errorf("tcp listener on %s: %w", cfg.TCPAddr, err)
		}
		sources = append(sources, logsource.NewTCPSource(server))
	}

	if withStdin {
		sources = append(sources, logsource.NewStdinSource(ctx))
	}

	return sources, nil
}

// stdinPiped reports whether stdin carries piped data rather than a terminal.
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
