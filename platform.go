package jvmgetter

import "runtime"

// Platform describes which strategies make sense on the running system.
type Platform struct {
	OS string
	// Direct reports that a same process symbol table query is compiled in.
	Direct bool
	// Hidden reports that the linker may withhold the symbol from dynamic lookup,
	// which enables the on-disk fallback.
	Hidden bool
}

// CurrentPlatform describes the platform this binary was built for.
func CurrentPlatform() Platform {
	return Platform{
		OS:     runtime.GOOS,
		Direct: hasDirect,
		Hidden: symbolHidden,
	}
}
