//go:build !linux && !(cgo && freebsd)

package modules

func Default() Enumerator {
	return Unsupported{}
}
