//go:build linux && !cgo

package modules

// Default returns the enumerator backed by /proc/self/maps.
func Default() Enumerator {
	return Maps{}
}
