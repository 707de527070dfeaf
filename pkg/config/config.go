// Package config turns the raw arguments parsed by an argument surface into
// one validated, immutable runtime configuration for the proxyforge tools.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/proxyforge/proxyforge/pkg/units"
)

// OptionsError is a semantic or cross-field configuration violation: mode
// conflicts, file-usage conflicts, certificate-chain preconditions, or an
// unsupported platform feature. It aborts startup.
type OptionsError struct {
	Message string
}

func (e *OptionsError) Error() string {
	return e.Message
}

func optionsErrorf(format string, args ...any) error {
	return &OptionsError{Message: fmt.Sprintf(format, args...)}
}

// ModeKind enumerates the proxy operating modes.
type ModeKind int

const (
	ModeRegular ModeKind = iota
	ModeTransparent
	ModeSocks5
	ModeReverse
	ModeUpstream
)

func (k ModeKind) String() string {
	switch k {
	case ModeTransparent:
		return "transparent"
	case ModeSocks5:
		return "socks5"
	case ModeReverse:
		return "reverse"
	case ModeUpstream:
		return "upstream"
	default:
		return "regular"
	}
}

// ProxyMode is the selected operating mode. Upstream carries the verbatim
// user-supplied target for the reverse and upstream modes and is empty
// otherwise, so "more than one mode selected" is unrepresentable here.
type ProxyMode struct {
	Kind     ModeKind
	Upstream string
}

// AuthKind enumerates the proxy authentication mechanisms.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthNonAnonymous
	AuthSingleUser
	AuthHTPasswd
)

func (k AuthKind) String() string {
	switch k {
	case AuthNonAnonymous:
		return "nonanonymous"
	case AuthSingleUser:
		return "singleuser"
	case AuthHTPasswd:
		return "htpasswd"
	default:
		return "none"
	}
}

// AuthMode is the selected authentication mechanism plus its payload: the
// username:password pair for singleuser, the htpasswd path for htpasswd.
type AuthMode struct {
	Kind  AuthKind
	Value string
}

// ConsoleConfig holds the interactive console's own settings.
type ConsoleConfig struct {
	Palette            string `yaml:"palette"`
	PaletteTransparent bool   `yaml:"palette_transparent"`
	EventLog           bool   `yaml:"eventlog"`
	FocusFollow        bool   `yaml:"focus_follow"`
	Order              string `yaml:"order"`
	Mouse              bool   `yaml:"mouse"`
	Intercept          string `yaml:"intercept"`
	Filter             string `yaml:"filter"`
}

// DumpConfig holds the headless tool's own settings.
type DumpConfig struct {
	KeepServing bool   `yaml:"keepserving"`
	FlowDetail  int    `yaml:"flow_detail"`
	Filter      string `yaml:"filter"`
}

// WebConfig holds the web tool's own settings.
type WebConfig struct {
	OpenBrowser bool   `yaml:"open_browser"`
	Port        int    `yaml:"web_port"`
	Iface       string `yaml:"web_iface"`
	Debug       bool   `yaml:"web_debug"`
	Intercept   string `yaml:"intercept"`
}

// Config is the resolved runtime configuration. It is immutable once
// produced; a reconfiguration builds a fresh instance and swaps it in.
type Config struct {
	// Basic
	Verbosity    int      `yaml:"verbosity"`
	CADir        string   `yaml:"cadir"`
	AntiCache    bool     `yaml:"anticache"`
	AntiComp     bool     `yaml:"anticomp"`
	ShowHost     bool     `yaml:"showhost"`
	RFile        string   `yaml:"rfile"`
	Scripts      []string `yaml:"scripts"`
	StickyCookie string   `yaml:"stickycookie"`
	StickyAuth   string   `yaml:"stickyauth"`

	// Flow streaming
	StreamFile        *units.StreamFile `yaml:"-"`
	StreamLargeBodies int64             `yaml:"stream_large_bodies"`
	BodySizeLimit     int64             `yaml:"body_size_limit"`

	// Proxy
	Mode                ProxyMode `yaml:"-"`
	ListenHost          string    `yaml:"listen_host"`
	ListenPort          int       `yaml:"listen_port"`
	NoServer            bool      `yaml:"no_server"`
	IgnoreHosts         []string  `yaml:"ignore_hosts"`
	TCPHosts            []string  `yaml:"tcp_hosts"`
	HTTP2               bool      `yaml:"http2"`
	HTTP2Priority       bool      `yaml:"http2_priority"`
	WebSocket           bool      `yaml:"websocket"`
	RawTCP              bool      `yaml:"rawtcp"`
	SpoofSourceAddress  bool      `yaml:"spoof_source_address"`
	UpstreamAuth        string    `yaml:"upstream_auth"`
	UpstreamBindAddress string    `yaml:"upstream_bind_address"`
	KeepHostHeader      bool      `yaml:"keep_host_header"`

	// SSL
	Certs                         []units.CertSpec `yaml:"-"`
	CiphersClient                 string           `yaml:"ciphers_client"`
	CiphersServer                 string           `yaml:"ciphers_server"`
	ClientCerts                   string           `yaml:"clientcerts"`
	UpstreamCert                  bool             `yaml:"upstream_cert"`
	AddUpstreamCertsToClientChain bool             `yaml:"add_upstream_certs_to_client_chain"`
	SSLInsecure                   bool             `yaml:"ssl_insecure"`
	SSLVerifyUpstreamTrustedCADir string           `yaml:"ssl_verify_upstream_trusted_cadir"`
	SSLVerifyUpstreamTrustedCA    string           `yaml:"ssl_verify_upstream_trusted_ca"`
	SSLVersionClient              string           `yaml:"ssl_version_client"`
	SSLVersionServer              string           `yaml:"ssl_version_server"`

	// Onboarding app
	Onboarding     bool   `yaml:"onboarding"`
	OnboardingHost string `yaml:"onboarding_host"`
	OnboardingPort int    `yaml:"onboarding_port"`

	// Replay
	ClientReplay                    []string `yaml:"client_replay"`
	ServerReplay                    []string `yaml:"server_replay"`
	ReplayKillExtra                 bool     `yaml:"replay_kill_extra"`
	ServerReplayUseHeaders          []string `yaml:"server_replay_use_headers"`
	RefreshServerPlayback           bool     `yaml:"refresh_server_playback"`
	ServerReplayNoPop               bool     `yaml:"server_replay_nopop"`
	ServerReplayIgnoreContent       bool     `yaml:"server_replay_ignore_content"`
	ServerReplayIgnorePayloadParams []string `yaml:"server_replay_ignore_payload_params"`
	ServerReplayIgnoreParams        []string `yaml:"server_replay_ignore_params"`
	ServerReplayIgnoreHost          bool     `yaml:"server_replay_ignore_host"`

	// Rewriting
	Replacements     []string `yaml:"replacements"`
	ReplacementFiles []string `yaml:"replacement_files"`
	SetHeaders       []string `yaml:"setheaders"`

	// Authentication
	Auth AuthMode `yaml:"-"`

	// Tool layers, populated only for the owning surface.
	Console ConsoleConfig `yaml:"console,omitempty"`
	Dump    DumpConfig    `yaml:"dump,omitempty"`
	Web     WebConfig     `yaml:"web,omitempty"`
}

// WriteYAML renders the effective configuration, for display and debugging.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}
