// Package main implements proxyweb, the web-UI front-end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/skratchdot/open-golang/open"

	"github.com/proxyforge/proxyforge/internal/builder"
	"github.com/proxyforge/proxyforge/pkg/config"
	"github.com/proxyforge/proxyforge/pkg/options"
)

var version = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	surface := builder.Build(config.ToolWeb, options.Defaults())

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
		fmt.Printf("proxyweb %s\n", version)
		return 0
	}

	cfg, err := config.Resolve(raw)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	url := fmt.Sprintf("http://%s:%d/", cfg.Web.Iface, cfg.Web.Port)
	pterm.Info.Printfln("proxy configured: mode=%s listen=%s:%d web=%s",
		cfg.Mode.Kind, cfg.ListenHost, cfg.ListenPort, url)
	if cfg.Web.OpenBrowser {
		if err := open.Run(url); err != nil {
			pterm.Warning.Printfln("could not open browser: %v", err)
		}
	}
	return 0
}
