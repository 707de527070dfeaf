//go:build linux || darwin

package platform

// Linux recovers the original destination via SO_ORIGINAL_DST, macOS via
// the pf state table.
const originalDstAvailable = true
