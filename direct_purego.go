//go:build !cgo && (linux || darwin || freebsd)

package jvmgetter

import (
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

const hasDirect = true

// directLookup searches the global scope of the process. RTLD_DEFAULT is a pseudo handle,
// there is nothing to close. purego drains dlerror itself when Dlsym fails.
func directLookup(symbol string) (Sym, error) {
	addr, err := purego.Dlsym(purego.RTLD_DEFAULT, symbol)
	if err != nil {
		return 0, errors.Wrapf(ErrSymbolNotFound, "%s: %v", symbol, err)
	}
	if addr == 0 {
		return 0, errors.Wrap(ErrSymbolNotFound, symbol)
	}
	return Sym(addr), nil
}
