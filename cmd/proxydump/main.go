// Package main implements proxydump, the headless streaming front-end.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/proxyforge/proxyforge/internal/builder"
	"github.com/proxyforge/proxyforge/pkg/config"
	"github.com/proxyforge/proxyforge/pkg/options"
)

var version = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	surface := builder.Build(config.ToolDump, options.Defaults())

	raw, err := surface.Parse(argv)
	if err != nil {
		var perr *builder.SurfaceParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, perr.Usage)
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if raw.Bool("version") {
		fmt.Printf("proxydump %s\n", version)
		return 0
	}

	cfg, err := config.Resolve(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Verbosity),
	}))
	logger.Info("proxy configured",
		"mode", cfg.Mode.Kind.String(),
		"listen_host", cfg.ListenHost,
		"listen_port", cfg.ListenPort,
		"flow_detail", cfg.Dump.FlowDetail,
		"filter", cfg.Dump.Filter,
	)
	return 0
}

// logLevel maps resolved verbosity onto slog levels: quiet shows errors
// only, the default shows info, anything above enables debug.
func logLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelError
	case verbosity <= 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
