package options

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultCADir returns the default certificate-authority directory. The
// default configuration file lives under it as well.
func DefaultCADir() string {
	return filepath.Join(xdg.DataHome, "proxyforge")
}

// SSLVersions are the accepted values for ssl_version_client and
// ssl_version_server. "secure" means TLS 1.0 and newer.
var SSLVersions = []string{"all", "secure", "SSLv3", "TLSv1", "TLSv1_1", "TLSv1_2"}

// Defaults returns a registry populated with every option shared by the
// console, dump, and web surfaces. Surface-specific flags (palette, web
// port, ...) are wired directly by the builder and have no descriptor here.
func Defaults() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{
		// Basic
		{Name: "anticache", Kind: Bool, Default: false,
			Help: "Strip out request headers that might cause the server to return 304-not-modified."},
		{Name: "cadir", Kind: String, Default: DefaultCADir(),
			Help: "Location of the certificate-authority files."},
		{Name: "showhost", Kind: Bool, Default: false,
			Help: "Use the Host header to construct URLs for display."},
		{Name: "quiet", Kind: Bool, Default: false,
			Help: "Quiet."},
		{Name: "rfile", Kind: String, Default: "",
			Help: "Read flows from file."},
		{Name: "scripts", Kind: StringList, Default: []string(nil),
			Help: "Run a script. Surround with quotes to pass script arguments. Can be passed multiple times."},
		{Name: "stickycookie", Kind: String, Default: "",
			Help: "Set sticky cookie filter. Matched against requests."},
		{Name: "stickyauth", Kind: String, Default: "",
			Help: "Set sticky auth filter. Matched against requests."},
		{Name: "verbose", Kind: Int, Default: 2,
			Help: "Increase log verbosity."},
		{Name: "anticomp", Kind: Bool, Default: false,
			Help: "Try to convince servers to send us un-compressed data."},
		{Name: "body_size_limit", Kind: Size, Default: "",
			Help: "Byte size limit of HTTP request and response bodies. Understands k/m/g suffixes, i.e. 3m for 3 megabytes."},
		{Name: "stream_large_bodies", Kind: Size, Default: "",
			Help: "Stream data to the client if response body exceeds the given threshold. If streamed, the body will not be stored in any way. Understands k/m/g suffixes, i.e. 3m for 3 megabytes."},

		// Proxy modes
		{Name: "reverse_proxy", Kind: String, Default: "",
			Help: "Forward all requests to upstream HTTP server: http[s]://host[:port]."},
		{Name: "socks_proxy", Kind: Bool, Default: false,
			Help: "Set SOCKS5 proxy mode."},
		{Name: "transparent_proxy", Kind: Bool, Default: false,
			Help: "Set transparent proxy mode."},
		{Name: "upstream_proxy", Kind: String, Default: "",
			Help: "Forward all requests to upstream proxy server: http://host[:port]."},

		// Proxy options
		{Name: "listen_host", Kind: String, Default: "",
			Help: "Address to bind proxy to (defaults to all interfaces)."},
		{Name: "ignore_hosts", Kind: StringList, Default: []string(nil),
			Help: "Ignore host and forward all traffic without processing it. The value is interpreted as a regular expression and matched on the ip or the hostname. Can be passed multiple times."},
		{Name: "tcp_hosts", Kind: StringList, Default: []string(nil),
			Help: "Generic TCP SSL proxy mode for all hosts that match the pattern. Similar to --ignore, but SSL connections are intercepted."},
		{Name: "no_server", Kind: Bool, Default: false,
			Help: "Don't start a proxy server."},
		{Name: "listen_port", Kind: Int, Default: 8080,
			Help: "Proxy service port."},
		{Name: "http2", Kind: Bool, Default: true,
			Help: "Enable/disable HTTP/2 support. HTTP/2 support is enabled by default."},
		{Name: "http2_priority", Kind: Bool, Default: false,
			Help: "Forward HTTP/2 priority information."},
		{Name: "websocket", Kind: Bool, Default: true,
			Help: "Enable/disable WebSocket support. WebSocket support is enabled by default."},
		{Name: "upstream_auth", Kind: String, Default: "",
			Help: "Add HTTP Basic authentication to upstream proxy and reverse proxy requests. Format: username:password."},
		{Name: "rawtcp", Kind: Bool, Default: false,
			Help: "Enable/disable experimental raw TCP support."},
		{Name: "spoof_source_address", Kind: Bool, Default: false,
			Help: "Use the client's IP for server-side connections."},
		{Name: "upstream_bind_address", Kind: String, Default: "",
			Help: "Address to bind upstream requests to (defaults to none)."},
		{Name: "keep_host_header", Kind: Bool, Default: false,
			Help: "Reverse proxy: keep the original host header instead of rewriting it to the reverse proxy target."},

		// SSL
		{Name: "certs", Kind: StringList, Default: []string(nil),
			Help: "Add an SSL certificate. SPEC is of the form \"[domain=]path\". The domain may include a wildcard, and is equal to \"*\" if not specified. Can be passed multiple times."},
		{Name: "ciphers_client", Kind: String, Default: "",
			Help: "Set supported ciphers for client connections. (OpenSSL syntax)"},
		{Name: "ciphers_server", Kind: String, Default: "",
			Help: "Set supported ciphers for server connections. (OpenSSL syntax)"},
		{Name: "clientcerts", Kind: String, Default: "",
			Help: "Client certificate file or directory."},
		{Name: "upstream_cert", Kind: Bool, Default: true,
			Help: "Connect to upstream server to look up certificate details."},
		{Name: "add_upstream_certs_to_client_chain", Kind: Bool, Default: false,
			Help: "Add all certificates of the upstream server to the certificate chain that will be served to the proxied client."},
		{Name: "ssl_insecure", Kind: Bool, Default: false,
			Help: "Do not verify upstream server SSL/TLS certificates."},
		{Name: "ssl_verify_upstream_trusted_cadir", Kind: String, Default: "",
			Help: "Path to a directory of trusted CA certificates for upstream server verification prepared using the c_rehash tool."},
		{Name: "ssl_verify_upstream_trusted_ca", Kind: String, Default: "",
			Help: "Path to a PEM formatted trusted CA certificate."},
		{Name: "ssl_version_client", Kind: String, Default: "secure",
			Help: "Set supported SSL/TLS versions for client connections. SSLv3 and 'all' are INSECURE. Defaults to secure, which is TLS1.0+."},
		{Name: "ssl_version_server", Kind: String, Default: "secure",
			Help: "Set supported SSL/TLS versions for server connections. SSLv3 and 'all' are INSECURE. Defaults to secure, which is TLS1.0+."},

		// Onboarding app
		{Name: "onboarding", Kind: Bool, Default: true,
			Help: "Toggle the onboarding app."},
		{Name: "onboarding_host", Kind: String, Default: "proxyforge.it",
			Help: "Domain to serve the onboarding app from. For transparent mode, use an IP when a DNS entry for the app domain is not present."},
		{Name: "onboarding_port", Kind: Int, Default: 80,
			Help: "Port to serve the onboarding app from."},

		// Client replay
		{Name: "client_replay", Kind: StringList, Default: []string(nil),
			Help: "Replay client requests from a saved file."},

		// Server replay
		{Name: "server_replay", Kind: StringList, Default: []string(nil),
			Help: "Replay server responses from a saved file."},
		{Name: "replay_kill_extra", Kind: Bool, Default: false,
			Help: "Kill extra requests during replay."},
		{Name: "server_replay_use_headers", Kind: StringList, Default: []string(nil),
			Help: "Request headers to be considered during replay. Can be passed multiple times."},
		{Name: "refresh_server_playback", Kind: Bool, Default: true,
			Help: "Refresh server replay responses by adjusting date, expires and last-modified headers, as well as adjusting cookie expiration."},
		{Name: "server_replay_nopop", Kind: Bool, Default: false,
			Help: "Disable response pop from response flow. This makes it possible to replay same response multiple times."},
		{Name: "server_replay_ignore_content", Kind: Bool, Default: false,
			Help: "Ignore request's content while searching for a saved flow to replay."},
		{Name: "server_replay_ignore_payload_params", Kind: StringList, Default: []string(nil),
			Help: "Request's payload parameters (application/x-www-form-urlencoded or multipart/form-data) to be ignored while searching for a saved flow to replay. Can be passed multiple times."},
		{Name: "server_replay_ignore_params", Kind: StringList, Default: []string(nil),
			Help: "Request's parameters to be ignored while searching for a saved flow to replay. Can be passed multiple times."},
		{Name: "server_replay_ignore_host", Kind: Bool, Default: false,
			Help: "Ignore request's destination host while searching for a saved flow to replay."},

		// Replacements
		{Name: "replacements", Kind: StringList, Default: []string(nil),
			Help: "Replacement pattern of the form \"/pattern/regex/replacement\", where the separator can be any character."},
		{Name: "replacement_files", Kind: StringList, Default: []string(nil),
			Help: "Replacement pattern, where the replacement clause is a path to a file."},

		// Set headers
		{Name: "setheaders", Kind: StringList, Default: []string(nil),
			Help: "Header set pattern of the form \"/pattern/header/value\", where the separator can be any character."},

		// Proxy authentication
		{Name: "auth_nonanonymous", Kind: Bool, Default: false,
			Help: "Allow access to any user as long as credentials are specified."},
		{Name: "auth_singleuser", Kind: String, Default: "",
			Help: "Allows access to a single user, specified in the form username:password."},
		{Name: "auth_htpasswd", Kind: String, Default: "",
			Help: "Allow access to users specified in an Apache htpasswd file."},
	} {
		r.MustRegister(d)
	}
	return r
}
