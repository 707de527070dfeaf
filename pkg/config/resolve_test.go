package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxyforge/proxyforge/pkg/units"
)

// rawWith builds a RawArgs with sensible defaults plus overrides, so each
// test names only the options it cares about.
func rawWith(tool Tool, overrides map[string]any) *RawArgs {
	raw := NewRawArgs(tool)
	raw.Set("verbose", 2)
	raw.Set("upstream_cert", true)
	raw.Set("http2", true)
	raw.Set("websocket", true)
	raw.Set("refresh_server_playback", true)
	raw.Set("onboarding", true)
	raw.Set("listen_port", 8080)
	for k, v := range overrides {
		raw.Set(k, v)
	}
	return raw
}

func TestResolve_QuietForcesMinimumVerbosity(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{"verbose": 5, "quiet": true})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Verbosity)
}

func TestResolve_VerbosityPassesThroughWithoutQuiet(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{"verbose": 3})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Verbosity)
}

func TestResolve_StreamFileConflicts(t *testing.T) {
	tests := []struct {
		name    string
		mode    units.StreamMode
		wantSub string
	}{
		{"write and read same file", units.StreamWrite, "reading and writing"},
		{"append and read same file", units.StreamAppend, "infinite loop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawWith(ToolDump, map[string]any{"rfile": "flow.db"})
			raw.StreamFile = &units.StreamFile{Path: "flow.db", Mode: tt.mode}

			_, err := Resolve(raw)
			require.Error(t, err)
			assert.IsType(t, &OptionsError{}, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}

func TestResolve_StreamFileDistinctFromReadFile(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{"rfile": "flowA.db"})
	raw.StreamFile = &units.StreamFile{Path: "flowB.db", Mode: units.StreamWrite}

	cfg, err := Resolve(raw)
	require.NoError(t, err)
	require.NotNil(t, cfg.StreamFile)
	assert.Equal(t, "flowB.db", cfg.StreamFile.Path)
	assert.Equal(t, "flowA.db", cfg.RFile)
}

func TestResolve_SizeOptions(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{
		"stream_large_bodies": "512k",
		"body_size_limit":     "3m",
	})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), cfg.StreamLargeBodies)
	assert.Equal(t, int64(3*1024*1024), cfg.BodySizeLimit)
}

func TestResolve_SizeOptionErrorsNameTheOption(t *testing.T) {
	_, err := Resolve(rawWith(ToolDump, map[string]any{"body_size_limit": "3x"}))
	require.Error(t, err)
	assert.IsType(t, &OptionsError{}, err)
	assert.Contains(t, err.Error(), "body size limit")

	_, err = Resolve(rawWith(ToolDump, map[string]any{"stream_large_bodies": "bogus"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream-large-bodies")
}

func TestResolve_CertListPreservesOrderAndDuplicates(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{
		"certs": []string{"example.com=a.pem", "b.pem", "example.com=a.pem"},
	})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	require.Len(t, cfg.Certs, 3)
	assert.Equal(t, units.CertSpec{Domain: "example.com", Path: "a.pem"}, cfg.Certs[0])
	assert.Equal(t, units.CertSpec{Domain: "*", Path: "b.pem"}, cfg.Certs[1])
	assert.Equal(t, cfg.Certs[0], cfg.Certs[2])
}

func TestResolve_ProxyModeSelection(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]any
		want     ProxyMode
	}{
		{"regular by default", nil, ProxyMode{Kind: ModeRegular}},
		{"socks", map[string]any{"socks_proxy": true}, ProxyMode{Kind: ModeSocks5}},
		{"reverse captures target verbatim",
			map[string]any{"reverse_proxy": "https://example.com:8443"},
			ProxyMode{Kind: ModeReverse, Upstream: "https://example.com:8443"}},
		{"upstream captures target verbatim",
			map[string]any{"upstream_proxy": "http://proxy:3128"},
			ProxyMode{Kind: ModeUpstream, Upstream: "http://proxy:3128"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(rawWith(ToolDump, tt.override))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestResolve_TransparentMode(t *testing.T) {
	restore := transparentAvailable
	defer func() { transparentAvailable = restore }()

	transparentAvailable = func() bool { return true }
	cfg, err := Resolve(rawWith(ToolDump, map[string]any{"transparent_proxy": true}))
	require.NoError(t, err)
	assert.Equal(t, ModeTransparent, cfg.Mode.Kind)

	transparentAvailable = func() bool { return false }
	_, err = Resolve(rawWith(ToolDump, map[string]any{"transparent_proxy": true}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported on this platform")

	// The capability is only consulted when transparent mode is requested.
	_, err = Resolve(rawWith(ToolDump, nil))
	assert.NoError(t, err)
}

func TestResolve_ProxyModesAreMutuallyExclusive(t *testing.T) {
	restore := transparentAvailable
	defer func() { transparentAvailable = restore }()
	transparentAvailable = func() bool { return true }

	pairs := []map[string]any{
		{"transparent_proxy": true, "socks_proxy": true},
		{"transparent_proxy": true, "reverse_proxy": "http://u"},
		{"socks_proxy": true, "upstream_proxy": "http://u"},
		{"reverse_proxy": "http://u", "upstream_proxy": "http://u"},
	}
	for _, overrides := range pairs {
		_, err := Resolve(rawWith(ToolDump, overrides))
		require.Error(t, err, "overrides %v", overrides)
		assert.IsType(t, &OptionsError{}, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	}
}

func TestResolve_ChainPrecondition(t *testing.T) {
	_, err := Resolve(rawWith(ToolDump, map[string]any{
		"add_upstream_certs_to_client_chain": true,
		"upstream_cert":                      false,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add-upstream-certs-to-client-chain")

	// With upstream-cert retrieval left enabled, the chain can be built.
	cfg, err := Resolve(rawWith(ToolDump, map[string]any{
		"add_upstream_certs_to_client_chain": true,
	}))
	require.NoError(t, err)
	assert.True(t, cfg.AddUpstreamCertsToClientChain)
}

func TestResolve_AuthModes(t *testing.T) {
	cfg, err := Resolve(rawWith(ToolDump, map[string]any{"auth_singleuser": "alice:secret"}))
	require.NoError(t, err)
	assert.Equal(t, AuthMode{Kind: AuthSingleUser, Value: "alice:secret"}, cfg.Auth)

	cfg, err = Resolve(rawWith(ToolDump, map[string]any{"auth_htpasswd": "/etc/htpasswd"}))
	require.NoError(t, err)
	assert.Equal(t, AuthHTPasswd, cfg.Auth.Kind)

	cfg, err = Resolve(rawWith(ToolDump, nil))
	require.NoError(t, err)
	assert.Equal(t, AuthNone, cfg.Auth.Kind)
}

func TestResolve_AuthModesAreMutuallyExclusive(t *testing.T) {
	_, err := Resolve(rawWith(ToolDump, map[string]any{
		"auth_nonanonymous": true,
		"auth_singleuser":   "alice:secret",
	}))
	require.Error(t, err)
	assert.IsType(t, &OptionsError{}, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestResolve_SingleUserFormat(t *testing.T) {
	for _, bad := range []string{"alice", "alice:", ":secret", ":"} {
		_, err := Resolve(rawWith(ToolDump, map[string]any{"auth_singleuser": bad}))
		require.Error(t, err, "value %q", bad)
		assert.Contains(t, err.Error(), "username:password")
	}
}

func TestResolve_AssemblyCopiesListsThrough(t *testing.T) {
	raw := rawWith(ToolDump, map[string]any{
		"scripts":      []string{"a.py", "b.py", "a.py"},
		"replacements": []string{"/~q/foo/bar"},
		"setheaders":   []string{"/~s/Server/proxyforge"},
	})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py", "a.py"}, cfg.Scripts)
	assert.Equal(t, []string{"/~q/foo/bar"}, cfg.Replacements)
	assert.Equal(t, []string{"/~s/Server/proxyforge"}, cfg.SetHeaders)
}

func TestResolve_ToolLayers(t *testing.T) {
	raw := rawWith(ToolConsole, map[string]any{
		"console_palette": "solarized_dark",
		"console_order":   "url",
		"console_mouse":   true,
		"intercept":       "~d example.com",
		"filter":          "~u /api",
	})
	cfg, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, "solarized_dark", cfg.Console.Palette)
	assert.Equal(t, "url", cfg.Console.Order)
	assert.Equal(t, "~d example.com", cfg.Console.Intercept)

	raw = rawWith(ToolWeb, map[string]any{
		"web_open_browser": false,
		"web_port":         9999,
		"web_iface":        "0.0.0.0",
	})
	cfg, err = Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Web.Port)
	assert.False(t, cfg.Web.OpenBrowser)
}
