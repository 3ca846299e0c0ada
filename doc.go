/*
Package jvmgetter locates JNI_GetCreatedJavaVMs in the current process at runtime, so native
code embedded in a JVM or Android Runtime host can reach the hosting JavaVM without a
JNI_OnLoad hook.

# License

Source codes are under Apache License Version 2.0.

# Strategies

 1. Direct: ask the dynamic linker for the symbol in the process itself (dlopen(NULL) and dlsym
    with cgo, purego without it, GetModuleHandleEx and GetProcAddress for jvm.dll on Windows).
 2. Fallback, Android only: API levels 24 to 30 hide the symbol from dlsym. The loaded module
    list is walked until a path ends with the ART library name (system property
    persist.sys.dalvik.vm.lib.2, libart.so by default). The library file is then read from
    disk and parsed as ELF, and the symbol value is added to the module load bias.
 3. Host image, opt in with [WithStrategy] and hostimage.Strategy: search the symbol table
    of the running executable, for hosts that link a runtime statically. It depends on
    goloader and only builds with the goloader tag on a prepared Go SDK.

The first strategy that succeeds wins. Nothing is cached: every call walks the chain again.

# Notes

 1. This depends on implementation details of Android, not on its public API. Use at your
    own risk.
 2. Every call blocks on file and linker I/O. Run it off latency sensitive goroutines.
 3. The returned address is not validated. It is only meaningful as JNI_GetCreatedJavaVMs.

# Samples

	if vm, ok := jvmgetter.GetJavaVM(); ok {
		// attach a thread through the JNI invocation interface of vm
	}

See locate for a command line tool that prints the address, the loaded modules or the
symbol value inside a library file.
*/
package jvmgetter
