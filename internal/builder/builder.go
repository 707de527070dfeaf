// Package builder assembles the argument surface for each proxyforge tool
// variant: shared option groups wired from the registry, tool-specific flag
// layers, and the config-file/environment merge beneath the command line.
package builder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proxyforge/proxyforge/pkg/config"
	"github.com/proxyforge/proxyforge/pkg/options"
	"github.com/proxyforge/proxyforge/pkg/units"
)

// Palettes are the console color schemes.
var Palettes = []string{"dark", "light", "lowdark", "lowlight", "solarized_dark", "solarized_light"}

// Orders are the supported console flow sort orders.
var Orders = []string{"time", "method", "url", "size"}

// DefaultConfPath returns the default configuration-file location, a fixed
// filename under the default certificate-authority directory.
func DefaultConfPath() string {
	return filepath.Join(options.DefaultCADir(), "config.yaml")
}

// Surface is the argument parser for one tool variant. Build it once per
// invocation, then Parse argv against it.
type Surface struct {
	tool     config.Tool
	cmd      *cobra.Command
	reg      *options.Registry
	bindings []binding
}

// Build assembles the surface for a tool variant from the registry. Building
// is static wiring and never fails; an unknown or duplicate option name is a
// startup defect and panics.
func Build(tool config.Tool, reg *options.Registry) *Surface {
	s := &Surface{
		tool: tool,
		reg:  reg,
		cmd:  &cobra.Command{Use: tool.String(), SilenceUsage: true},
	}

	fs := s.cmd.Flags()
	fs.String("conf", DefaultConfPath(), "Configuration file.")
	s.extra("version", "", "", options.Bool, false, "Show version number and exit.")

	s.basicOptions()
	s.proxyModes()
	s.proxyOptions()
	s.sslOptions()
	s.onboardingApp()
	s.clientReplay()
	s.serverReplay()
	s.replacements()
	s.setHeaders()
	s.proxyAuthentication()

	switch tool {
	case config.ToolConsole:
		s.consoleLayer()
	case config.ToolDump:
		s.dumpLayer()
	case config.ToolWeb:
		s.webLayer()
	}
	return s
}

func (s *Surface) basicOptions() {
	s.opt("anticache", "", "")
	s.opt("cadir", "", "")
	s.opt("showhost", "", "")
	s.opt("quiet", "", "q")
	s.opt("rfile", "read-flows", "r")
	s.opt("scripts", "script", "s")
	s.opt("stickycookie", "", "t")
	s.opt("stickyauth", "", "u")
	s.countOpt("verbose", "", "v")
	s.opt("anticomp", "", "")
	s.opt("body_size_limit", "", "Z")
	s.opt("stream_large_bodies", "stream", "")

	fs := s.cmd.Flags()
	fs.StringP("wfile", "w", "", "Write flows to file.")
	fs.StringP("afile", "a", "", "Append flows to file.")
	s.cmd.MarkFlagsMutuallyExclusive("wfile", "afile")
}

func (s *Surface) proxyModes() {
	s.opt("reverse_proxy", "reverse", "R")
	s.opt("socks_proxy", "socks", "")
	s.opt("transparent_proxy", "transparent", "T")
	s.opt("upstream_proxy", "upstream", "U")
}

func (s *Surface) proxyOptions() {
	s.opt("listen_host", "bind-address", "b")
	s.opt("ignore_hosts", "ignore", "I")
	s.opt("tcp_hosts", "tcp", "")
	s.opt("no_server", "", "n")
	s.opt("listen_port", "port", "p")
	s.opt("http2", "", "")
	s.opt("http2_priority", "", "")
	s.cmd.MarkFlagsMutuallyExclusive("no-http2", "http2-priority")
	s.opt("websocket", "", "")
	s.opt("upstream_auth", "", "")
	s.opt("rawtcp", "", "")
	s.opt("spoof_source_address", "", "")
	s.opt("upstream_bind_address", "", "")
	s.opt("keep_host_header", "", "")
}

func (s *Surface) sslOptions() {
	s.opt("certs", "cert", "")
	s.opt("ciphers_client", "", "")
	s.opt("ciphers_server", "", "")
	s.opt("clientcerts", "client-certs", "")
	s.opt("upstream_cert", "", "")
	s.opt("add_upstream_certs_to_client_chain", "", "")
	s.opt("ssl_insecure", "insecure", "")
	s.opt("ssl_verify_upstream_trusted_cadir", "upstream-trusted-cadir", "")
	s.opt("ssl_verify_upstream_trusted_ca", "upstream-trusted-ca", "")
	s.enumOpt("ssl_version_client", "", "", options.SSLVersions)
	s.enumOpt("ssl_version_server", "", "", options.SSLVersions)
}

func (s *Surface) onboardingApp() {
	s.opt("onboarding", "", "")
	s.opt("onboarding_host", "", "")
	s.opt("onboarding_port", "", "")
}

func (s *Surface) clientReplay() {
	s.opt("client_replay", "", "c")
}

func (s *Surface) serverReplay() {
	s.opt("server_replay", "", "S")
	s.opt("replay_kill_extra", "", "")
	s.opt("server_replay_use_headers", "server-replay-use-header", "")
	s.opt("refresh_server_playback", "", "")
	s.opt("server_replay_nopop", "", "")
	s.opt("server_replay_ignore_content", "replay-ignore-content", "")
	s.opt("server_replay_ignore_payload_params", "replay-ignore-payload-param", "")
	s.cmd.MarkFlagsMutuallyExclusive("replay-ignore-content", "replay-ignore-payload-param")
	s.opt("server_replay_ignore_params", "replay-ignore-param", "")
	s.opt("server_replay_ignore_host", "replay-ignore-host", "")
}

func (s *Surface) replacements() {
	s.opt("replacements", "replace", "")
	s.opt("replacement_files", "replace-from-file", "")
}

func (s *Surface) setHeaders() {
	s.opt("setheaders", "setheader", "")
}

func (s *Surface) proxyAuthentication() {
	// Exclusivity between the three mechanisms is validated during
	// resolution so config-file input is held to the same rule.
	s.opt("auth_nonanonymous", "nonanonymous", "")
	s.opt("auth_singleuser", "singleuser", "")
	s.opt("auth_htpasswd", "htpasswd", "")
}

func (s *Surface) consoleLayer() {
	s.extraEnum("console_palette", "palette", "", "dark", Palettes, "Select color palette.")
	s.extra("console_palette_transparent", "palette-transparent", "", options.Bool, false,
		"Set transparent background for palette.")
	s.extra("console_eventlog", "eventlog", "e", options.Bool, false,
		"Show event log.")
	s.extra("console_focus_follow", "focus-follow", "", options.Bool, false,
		"Focus follows new flows.")
	s.extraEnum("console_order", "order", "", "time", Orders, "Flow sort order.")
	s.extra("console_mouse", "no-mouse", "", options.Bool, true,
		"Disable mouse interaction.")
	s.extra("intercept", "", "i", options.String, "", "Intercept filter expression.")
	s.extra("filter", "", "f", options.String, "", "Filter view expression.")
}

func (s *Surface) dumpLayer() {
	s.extra("keepserving", "", "k", options.Bool, false,
		"Continue serving after client playback or file read. We exit by default.")
	s.extraCount("flow_detail", "detail", "d", 1,
		"Increase flow detail display level. Can be passed multiple times.")
}

func (s *Surface) webLayer() {
	s.extra("web_open_browser", "no-browser", "", options.Bool, true,
		"Don't start a browser.")
	s.extra("web_port", "", "", options.Int, 8081, "Web UI port.")
	s.extra("web_iface", "", "", options.String, "127.0.0.1", "Web UI interface.")
	s.extra("web_debug", "", "", options.Bool, false, "Turn on web debugging.")
	s.extra("intercept", "", "i", options.String, "", "Intercept filter expression.")
}

// Usage returns the generated usage text for error reporting.
func (s *Surface) Usage() string {
	return s.cmd.UsageString()
}

// Parse parses argv against the surface and returns the raw argument bag.
// Malformed input is reported as a SurfaceParseError; the caller is expected
// to print it and exit non-zero without attempting resolution.
func (s *Surface) Parse(argv []string) (*config.RawArgs, error) {
	fs := s.cmd.Flags()
	if err := s.cmd.ParseFlags(argv); err != nil {
		return nil, &SurfaceParseError{Err: err, Usage: s.Usage()}
	}
	if err := s.cmd.ValidateFlagGroups(); err != nil {
		return nil, &SurfaceParseError{Err: err, Usage: s.Usage()}
	}

	confPath, _ := fs.GetString("conf")
	layers, err := loadLayers(confPath, fs.Changed("conf"))
	if err != nil {
		return nil, err
	}

	raw := config.NewRawArgs(s.tool)
	for _, b := range s.bindings {
		val, verr := b.value(fs, layers)
		if verr != nil {
			return nil, &SurfaceParseError{Err: verr, Flag: b.flag, Usage: s.Usage()}
		}
		raw.Set(b.key, val)
	}

	// The stream-file flags collapse into one structured value keyed on
	// write-versus-append.
	if path, _ := fs.GetString("wfile"); fs.Changed("wfile") {
		raw.StreamFile = &units.StreamFile{Path: path, Mode: units.StreamWrite}
	} else if path, _ := fs.GetString("afile"); fs.Changed("afile") {
		raw.StreamFile = &units.StreamFile{Path: path, Mode: units.StreamAppend}
	}

	// Only the dump tool accepts positional tokens, joined into its view
	// filter.
	if s.tool == config.ToolDump {
		raw.Set("filter", strings.Join(fs.Args(), " "))
	} else if args := fs.Args(); len(args) > 0 {
		return nil, &SurfaceParseError{
			Err:   fmt.Errorf("unexpected argument: %s", args[0]),
			Usage: s.Usage(),
		}
	}
	return raw, nil
}
