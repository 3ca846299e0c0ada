//go:build windows

package jvmgetter

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const hasDirect = true

// runtimeModule is the JVM library a Windows host has loaded.
const runtimeModule = "jvm.dll"

var procSetLastError = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetLastError")

// clearLastError resets the calling thread's last error, failed lookups must not leak it.
func clearLastError() {
	_, _, _ = procSetLastError.Call(0)
}

func directLookup(symbol string) (Sym, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	name, err := windows.UTF16PtrFromString(runtimeModule)
	if err != nil {
		return 0, errors.Wrap(ErrPlatformUnsupported, err.Error())
	}
	var h windows.Handle
	if err = windows.GetModuleHandleEx(0, name, &h); err != nil {
		clearLastError()
		return 0, errors.Wrapf(ErrModuleNotFound, "%s: %v", runtimeModule, err)
	}
	defer windows.FreeLibrary(h)
	addr, err := windows.GetProcAddress(h, symbol)
	if err != nil {
		clearLastError()
		return 0, errors.Wrapf(ErrSymbolNotFound, "%s: %v", symbol, err)
	}
	return Sym(addr), nil
}
