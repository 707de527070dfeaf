// Package main implements the proxyforge interactive console front-end. It
// resolves the configuration and stops at the hand-off boundary; the console
// renderer and proxy engine consume the Config from there.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/proxyforge/proxyforge/internal/builder"
	"github.com/proxyforge/proxyforge/pkg/config"
	"github.com/proxyforge/proxyforge/pkg/options"
)

var version = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	surface := builder.Build(config.ToolConsole, options.Defaults())

	raw, err := surface.Parse(argv)
	if err != nil {
		var perr *builder.SurfaceParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, perr.Usage)
		}
		pterm.Error.Println(err)
		return 2
	}
	if raw.Bool("version") {
		fmt.Printf("proxyforge %s\n", version)
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.Error.Println("proxyforge requires a terminal; use proxydump for non-interactive use")
		return 1
	}

	cfg, err := config.Resolve(raw)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	pterm.Info.Printfln("proxy configured: mode=%s listen=%s:%d palette=%s",
		cfg.Mode.Kind, cfg.ListenHost, cfg.ListenPort, cfg.Console.Palette)
	if cfg.Verbosity >= 3 {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			pterm.Error.Println(err)
			return 1
		}
	}
	return 0
}
