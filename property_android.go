//go:build android

package jvmgetter

import (
	"github.com/ebitengine/purego"
)

// propValueMax is PROP_VALUE_MAX from sys/system_properties.h, terminator included.
const propValueMax = 92

// systemProperty reads the runtime library name through __system_property_get in libc.
func systemProperty() string {
	libc, err := purego.Dlopen("libc.so", purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return ""
	}
	defer purego.Dlclose(libc)
	addr, err := purego.Dlsym(libc, "__system_property_get")
	if err != nil {
		return ""
	}
	var get func(name string, value *byte) int32
	purego.RegisterFunc(&get, addr)
	var buf [propValueMax + 1]byte
	n := int(get(runtimeLibraryProperty, &buf[0]))
	if n <= 0 {
		return ""
	}
	if n > propValueMax {
		n = propValueMax
	}
	return string(buf[:n])
}
