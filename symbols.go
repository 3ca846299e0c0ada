package jvmgetter

import (
	"github.com/pkg/errors"
)

// SymbolName is the invocation API export this package locates.
const SymbolName = "JNI_GetCreatedJavaVMs"

// Sym is an opaque native address. It only becomes callable through [Sym.GetCreatedJavaVMs].
type Sym uintptr

var (
	// ErrModuleNotFound occurs when no loaded module ends with the runtime library name.
	ErrModuleNotFound = errors.New("module not found")
	// ErrUnreadable occurs when the backing file of a module can not be opened, stat or read.
	ErrUnreadable = errors.New("unreadable image")
	// ErrMalformedImage occurs when a module file fails to parse as ELF.
	ErrMalformedImage = errors.New("malformed image")
	// ErrSymbolNotFound occurs when a symbol table holds no entry with the name.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrPlatformUnsupported occurs when a strategy has no implementation on this platform.
	ErrPlatformUnsupported = errors.New("platform unsupported")
)

// reason maps a strategy error to a short label for logs and metrics.
func reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModuleNotFound):
		return "module_not_found"
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	case errors.Is(err, ErrMalformedImage):
		return "malformed_image"
	case errors.Is(err, ErrSymbolNotFound):
		return "symbol_not_found"
	case errors.Is(err, ErrPlatformUnsupported):
		return "platform_unsupported"
	}
	return "other"
}
