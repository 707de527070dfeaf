// Package platform reports which platform-specific proxy primitives are
// available. The actual original-destination lookup lives in the proxy
// engine; configuration resolution only needs to know whether it exists.
package platform

// OriginalDstAvailable reports whether this platform can recover the
// original destination address of a redirected connection, which transparent
// proxy mode depends on.
func OriginalDstAvailable() bool {
	return originalDstAvailable
}
