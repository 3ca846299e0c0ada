//go:build cgo && unix

package jvmgetter

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

static uintptr_t selfLookup(const char* name, int* failed) {
	void* h = dlopen(NULL, RTLD_LAZY|RTLD_LOCAL);
	if (h == NULL) {
		dlerror();
		*failed = 1;
		return 0;
	}
	void* r = dlsym(h, name);
	if (r == NULL) {
		dlerror();
		*failed = 2;
	}
	dlclose(h);
	dlerror();
	return (uintptr_t)r;
}
*/
import "C"

import (
	"github.com/pkg/errors"
	"unsafe"
)

const hasDirect = true

func directLookup(symbol string) (Sym, error) {
	name := C.CString(symbol)
	defer C.free(unsafe.Pointer(name))
	var failed C.int
	addr := C.selfLookup(name, &failed)
	switch failed {
	case 1:
		return 0, errors.Wrap(ErrPlatformUnsupported, "dlopen self")
	case 2:
		return 0, errors.Wrap(ErrSymbolNotFound, symbol)
	}
	return Sym(addr), nil
}
