package jvmgetter

import (
	"github.com/ZenLiuCN/jvmgetter/elfimage"
	"github.com/ZenLiuCN/jvmgetter/modules"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"strings"
)

const (
	// runtimeLibraryProperty holds the file name of the ART library in use.
	runtimeLibraryProperty = "persist.sys.dalvik.vm.lib.2"
	// defaultRuntimeLibrary is used when the property is empty or unavailable.
	defaultRuntimeLibrary = "libart.so"
)

// fallbackStrategy finds the runtime library among loaded modules and reads the symbol out of
// its file on disk. The dynamic linker refuses dlsym on it, and the mapped image does not
// carry the section headers.
type fallbackStrategy struct {
	library    string
	property   func() string
	enumerator modules.Enumerator
	fs         afero.Fs
	logger     log.Logger
	metrics    *Metrics
}

func (s *fallbackStrategy) Name() string {
	return "fallback"
}

// libraryName returns the file name the loaded module path must end with.
func (s *fallbackStrategy) libraryName() string {
	if s.library != "" {
		return s.library
	}
	if s.property != nil {
		if v := s.property(); v != "" {
			return v
		}
	}
	return defaultRuntimeLibrary
}

func (s *fallbackStrategy) Find(symbol string) (Sym, error) {
	lib := s.libraryName()
	var (
		found  bool
		module modules.Module
	)
	err := s.enumerator.Walk(func(m modules.Module) bool {
		s.metrics.visited()
		if !strings.HasSuffix(m.Path, lib) {
			return false
		}
		found, module = true, m
		return true
	})
	if err != nil {
		if errors.Is(err, modules.ErrUnsupported) {
			return 0, errors.Wrap(ErrPlatformUnsupported, err.Error())
		}
		return 0, errors.Wrapf(ErrModuleNotFound, "enumerate: %v", err)
	}
	if !found {
		return 0, errors.Wrap(ErrModuleNotFound, lib)
	}
	level.Debug(s.logger).Log("msg", "runtime library loaded", "path", module.Path, "bias", module.LoadBias)

	data, size, err := elfimage.ReadFile(s.fs, module.Path)
	if err != nil {
		return 0, errors.Wrapf(ErrUnreadable, "%s: %v", module.Path, err)
	}
	if int64(len(data)) != size {
		level.Debug(s.logger).Log("msg", "short read", "path", module.Path, "size", size, "read", len(data))
	}
	img, err := elfimage.Parse(data)
	if err != nil {
		if errors.Is(err, elfimage.ErrNoSymbols) {
			return 0, errors.Wrapf(ErrSymbolNotFound, "%s: %v", module.Path, err)
		}
		return 0, errors.Wrapf(ErrMalformedImage, "%s: %v", module.Path, err)
	}
	e, err := img.Lookup(symbol)
	if err != nil {
		return 0, errors.Wrapf(ErrSymbolNotFound, "%s in %s", symbol, module.Path)
	}
	return Sym(module.LoadBias + uintptr(e.Value)), nil
}
