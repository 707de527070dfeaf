//go:build !linux && !darwin

package platform

const originalDstAvailable = false
