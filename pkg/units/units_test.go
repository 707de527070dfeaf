package units

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"512k", 512 * 1024},
		{"512K", 512 * 1024},
		{"3m", 3 * 1024 * 1024},
		{"3M", 3 * 1024 * 1024},
		{"1g", 1024 * 1024 * 1024},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if err != nil {
			t.Errorf("ParseSize(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSize_Malformed(t *testing.T) {
	for _, in := range []string{"", "3x", "m3", "k", "-1", "1.5m", "3mm"} {
		if _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q): expected error, got none", in)
		}
	}
}

func TestParseCertSpec(t *testing.T) {
	tests := []struct {
		in     string
		domain string
		path   string
	}{
		{"example.com=a.pem", "example.com", "a.pem"},
		{"a.pem", "*", "a.pem"},
		{"*.example.com=certs/b.pem", "*.example.com", "certs/b.pem"},
		// Only the first "=" splits; the rest belongs to the path.
		{"example.com=dir=odd/a.pem", "example.com", "dir=odd/a.pem"},
	}
	for _, tt := range tests {
		got := ParseCertSpec(tt.in)
		if got.Domain != tt.domain || got.Path != tt.path {
			t.Errorf("ParseCertSpec(%q) = (%q, %q), want (%q, %q)",
				tt.in, got.Domain, got.Path, tt.domain, tt.path)
		}
	}
}

func TestStreamModeString(t *testing.T) {
	if StreamWrite.String() != "write" || StreamAppend.String() != "append" {
		t.Errorf("unexpected StreamMode strings: %q, %q", StreamWrite, StreamAppend)
	}
}
