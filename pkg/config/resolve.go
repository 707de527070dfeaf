package config

import (
	"strings"

	"github.com/proxyforge/proxyforge/internal/platform"
	"github.com/proxyforge/proxyforge/pkg/units"
)

// transparentAvailable is swapped out in tests to exercise both platform
// outcomes.
var transparentAvailable = platform.OriginalDstAvailable

// Resolve turns raw arguments into a validated Config. Validation is
// fail-fast: the first violated rule aborts with a single OptionsError.
func Resolve(raw *RawArgs) (*Config, error) {
	cfg := &Config{}

	// Quiet wins over any number of -v flags.
	cfg.Verbosity = raw.Int("verbose")
	if raw.Bool("quiet") {
		cfg.Verbosity = 0
	}

	cfg.StickyCookie = raw.String("stickycookie")
	cfg.StickyAuth = raw.String("stickyauth")

	if s := raw.String("stream_large_bodies"); s != "" {
		n, err := units.ParseSize(s)
		if err != nil {
			return nil, optionsErrorf("Invalid stream-large-bodies specification: %s", s)
		}
		cfg.StreamLargeBodies = n
	}

	if raw.StreamFile != nil && raw.StreamFile.Path == raw.String("rfile") {
		if raw.StreamFile.Mode == units.StreamWrite {
			return nil, optionsErrorf(
				"Cannot use '%s' for both reading and writing flows. "+
					"Are you looking for --afile?", raw.String("rfile"))
		}
		return nil, optionsErrorf(
			"Cannot use '%s' for both reading and appending flows. "+
				"That would trigger an infinite loop.", raw.String("rfile"))
	}
	cfg.StreamFile = raw.StreamFile

	for _, spec := range raw.Strings("certs") {
		cfg.Certs = append(cfg.Certs, units.ParseCertSpec(spec))
	}

	if s := raw.String("body_size_limit"); s != "" {
		n, err := units.ParseSize(s)
		if err != nil {
			return nil, optionsErrorf("Invalid body size limit specification: %s", s)
		}
		cfg.BodySizeLimit = n
	}

	mode, err := resolveMode(raw)
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	if raw.Bool("add_upstream_certs_to_client_chain") && !raw.Bool("upstream_cert") {
		return nil, optionsErrorf(
			"The no-upstream-cert and add-upstream-certs-to-client-chain options " +
				"are mutually exclusive. If no-upstream-cert is enabled then the " +
				"upstream certificate is not retrieved before generating the " +
				"client certificate chain.")
	}

	auth, err := resolveAuth(raw)
	if err != nil {
		return nil, err
	}
	cfg.Auth = auth

	assemble(cfg, raw)
	return cfg, nil
}

// resolveMode selects exactly one proxy mode, defaulting to regular when no
// mode flag was supplied.
func resolveMode(raw *RawArgs) (ProxyMode, error) {
	c := 0
	mode := ProxyMode{Kind: ModeRegular}
	if raw.Bool("transparent_proxy") {
		c++
		if !transparentAvailable() {
			return ProxyMode{}, optionsErrorf("Transparent mode not supported on this platform.")
		}
		mode = ProxyMode{Kind: ModeTransparent}
	}
	if raw.Bool("socks_proxy") {
		c++
		mode = ProxyMode{Kind: ModeSocks5}
	}
	if s := raw.String("reverse_proxy"); s != "" {
		c++
		mode = ProxyMode{Kind: ModeReverse, Upstream: s}
	}
	if s := raw.String("upstream_proxy"); s != "" {
		c++
		mode = ProxyMode{Kind: ModeUpstream, Upstream: s}
	}
	if c > 1 {
		return ProxyMode{}, optionsErrorf(
			"Transparent, SOCKS5, reverse and upstream proxy mode are " +
				"mutually exclusive. Read the docs on proxy modes to understand why.")
	}
	return mode, nil
}

// resolveAuth selects at most one authentication mechanism. Exclusivity is
// checked here rather than left to the flag parser, so config-file input is
// held to the same rule as the command line.
func resolveAuth(raw *RawArgs) (AuthMode, error) {
	c := 0
	auth := AuthMode{Kind: AuthNone}
	if raw.Bool("auth_nonanonymous") {
		c++
		auth = AuthMode{Kind: AuthNonAnonymous}
	}
	if s := raw.String("auth_singleuser"); s != "" {
		c++
		if !validCredentials(s) {
			return AuthMode{}, optionsErrorf(
				"Invalid single-user specification. Please use the format username:password.")
		}
		auth = AuthMode{Kind: AuthSingleUser, Value: s}
	}
	if s := raw.String("auth_htpasswd"); s != "" {
		c++
		auth = AuthMode{Kind: AuthHTPasswd, Value: s}
	}
	if c > 1 {
		return AuthMode{}, optionsErrorf(
			"The nonanonymous, singleuser and htpasswd authentication options " +
				"are mutually exclusive.")
	}
	return auth, nil
}

// validCredentials reports whether s has a non-empty username:password form.
func validCredentials(s string) bool {
	i := strings.Index(s, ":")
	return i > 0 && i < len(s)-1
}

// assemble copies the remaining options through. Type coercion already
// happened in the surface builder, so this is a straight transfer.
func assemble(cfg *Config, raw *RawArgs) {
	cfg.CADir = raw.String("cadir")
	cfg.AntiCache = raw.Bool("anticache")
	cfg.AntiComp = raw.Bool("anticomp")
	cfg.ShowHost = raw.Bool("showhost")
	cfg.RFile = raw.String("rfile")
	cfg.Scripts = raw.Strings("scripts")

	cfg.ListenHost = raw.String("listen_host")
	cfg.ListenPort = raw.Int("listen_port")
	cfg.NoServer = raw.Bool("no_server")
	cfg.IgnoreHosts = raw.Strings("ignore_hosts")
	cfg.TCPHosts = raw.Strings("tcp_hosts")
	cfg.HTTP2 = raw.Bool("http2")
	cfg.HTTP2Priority = raw.Bool("http2_priority")
	cfg.WebSocket = raw.Bool("websocket")
	cfg.RawTCP = raw.Bool("rawtcp")
	cfg.SpoofSourceAddress = raw.Bool("spoof_source_address")
	cfg.UpstreamAuth = raw.String("upstream_auth")
	cfg.UpstreamBindAddress = raw.String("upstream_bind_address")
	cfg.KeepHostHeader = raw.Bool("keep_host_header")

	cfg.CiphersClient = raw.String("ciphers_client")
	cfg.CiphersServer = raw.String("ciphers_server")
	cfg.ClientCerts = raw.String("clientcerts")
	cfg.UpstreamCert = raw.Bool("upstream_cert")
	cfg.AddUpstreamCertsToClientChain = raw.Bool("add_upstream_certs_to_client_chain")
	cfg.SSLInsecure = raw.Bool("ssl_insecure")
	cfg.SSLVerifyUpstreamTrustedCADir = raw.String("ssl_verify_upstream_trusted_cadir")
	cfg.SSLVerifyUpstreamTrustedCA = raw.String("ssl_verify_upstream_trusted_ca")
	cfg.SSLVersionClient = raw.String("ssl_version_client")
	cfg.SSLVersionServer = raw.String("ssl_version_server")

	cfg.Onboarding = raw.Bool("onboarding")
	cfg.OnboardingHost = raw.String("onboarding_host")
	cfg.OnboardingPort = raw.Int("onboarding_port")

	cfg.ClientReplay = raw.Strings("client_replay")
	cfg.ServerReplay = raw.Strings("server_replay")
	cfg.ReplayKillExtra = raw.Bool("replay_kill_extra")
	cfg.ServerReplayUseHeaders = raw.Strings("server_replay_use_headers")
	cfg.RefreshServerPlayback = raw.Bool("refresh_server_playback")
	cfg.ServerReplayNoPop = raw.Bool("server_replay_nopop")
	cfg.ServerReplayIgnoreContent = raw.Bool("server_replay_ignore_content")
	cfg.ServerReplayIgnorePayloadParams = raw.Strings("server_replay_ignore_payload_params")
	cfg.ServerReplayIgnoreParams = raw.Strings("server_replay_ignore_params")
	cfg.ServerReplayIgnoreHost = raw.Bool("server_replay_ignore_host")

	cfg.Replacements = raw.Strings("replacements")
	cfg.ReplacementFiles = raw.Strings("replacement_files")
	cfg.SetHeaders = raw.Strings("setheaders")

	switch raw.Tool {
	case ToolConsole:
		cfg.Console = ConsoleConfig{
			Palette:            raw.String("console_palette"),
			PaletteTransparent: raw.Bool("console_palette_transparent"),
			EventLog:           raw.Bool("console_eventlog"),
			FocusFollow:        raw.Bool("console_focus_follow"),
			Order:              raw.String("console_order"),
			Mouse:              raw.Bool("console_mouse"),
			Intercept:          raw.String("intercept"),
			Filter:             raw.String("filter"),
		}
	case ToolDump:
		cfg.Dump = DumpConfig{
			KeepServing: raw.Bool("keepserving"),
			FlowDetail:  raw.Int("flow_detail"),
			Filter:      raw.String("filter"),
		}
	case ToolWeb:
		cfg.Web = WebConfig{
			OpenBrowser: raw.Bool("web_open_browser"),
			Port:        raw.Int("web_port"),
			Iface:       raw.String("web_iface"),
			Debug:       raw.Bool("web_debug"),
			Intercept:   raw.String("intercept"),
		}
	}
}
