//go:build cgo && (linux || freebsd)

package modules

// Default returns the enumerator backed by dl_iterate_phdr.
func Default() Enumerator {
	return Phdr{}
}
