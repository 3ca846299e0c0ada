//go:build !windows && !(cgo && unix) && !(!cgo && (linux || darwin || freebsd))

package jvmgetter

const hasDirect = false

func directLookup(string) (Sym, error) {
	return 0, ErrPlatformUnsupported
}
