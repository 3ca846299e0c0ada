//go:build cgo && (linux || freebsd)

package modules

/*
#include <stdint.h>

int modulesIterate(uintptr_t handle);
*/
import "C"

import (
	"runtime/cgo"
)

// Phdr enumerates modules with dl_iterate_phdr. The bias is dlpi_addr.
type Phdr struct{}

func (Phdr) Walk(visit Visitor) error {
	h := cgo.NewHandle(visit)
	defer h.Delete()
	C.modulesIterate(C.uintptr_t(h))
	return nil
}

//export modulesVisit
func modulesVisit(handle C.uintptr_t, addr C.uintptr_t, name *C.char) C.int {
	visit := cgo.Handle(handle).Value().(Visitor)
	if visit(Module{LoadBias: uintptr(addr), Path: C.GoString(name)}) {
		return 1
	}
	return 0
}
