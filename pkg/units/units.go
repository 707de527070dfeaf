// Package units converts human-readable option values into structured ones:
// byte sizes with k/m/g suffixes, certificate specs of the form
// "[domain=]path", and stream-file targets.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeParseError reports a malformed size string.
type SizeParseError struct {
	Input string
}

func (e *SizeParseError) Error() string {
	return fmt.Sprintf("invalid size specification: %q", e.Input)
}

var sizeMultipliers = map[string]int64{
	"k": 1024,
	"m": 1024 * 1024,
	"g": 1024 * 1024 * 1024,
}

// ParseSize parses a string of digits optionally followed by one of k, m, or
// g (case-insensitive) into a byte count. Zero is valid; limit-typed options
// treat it as "no limit".
func ParseSize(s string) (int64, error) {
	if s == "" {
		return 0, &SizeParseError{Input: s}
	}
	num := s
	mult := int64(1)
	suffix := strings.ToLower(s[len(s)-1:])
	if m, ok := sizeMultipliers[suffix]; ok {
		num = s[:len(s)-1]
		mult = m
	}
	n, err := strconv.ParseUint(num, 10, 63)
	if err != nil {
		return 0, &SizeParseError{Input: s}
	}
	return int64(n) * mult, nil
}

// CertSpec pairs a domain pattern with a certificate path. The pattern is
// "*" when the input carries no explicit domain. Patterns are not validated
// here; the certificate loader decides what they mean.
type CertSpec struct {
	Domain string
	Path   string
}

// ParseCertSpec splits "[domain=]path" on the first "=". It always succeeds:
// malformed paths are the certificate loader's problem.
func ParseCertSpec(s string) CertSpec {
	if domain, path, ok := strings.Cut(s, "="); ok {
		return CertSpec{Domain: domain, Path: path}
	}
	return CertSpec{Domain: "*", Path: s}
}

// StreamMode says whether a stream file is truncated or appended to.
type StreamMode int

const (
	// StreamWrite truncates the target file.
	StreamWrite StreamMode = iota
	// StreamAppend appends to the target file.
	StreamAppend
)

func (m StreamMode) String() string {
	if m == StreamAppend {
		return "append"
	}
	return "write"
}

// StreamFile is the target that captured flows are streamed into.
type StreamFile struct {
	Path string
	Mode StreamMode
}
