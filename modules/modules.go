// Package modules walks the shared images loaded into the current process.
package modules

import (
	"github.com/pkg/errors"
)

// ErrUnsupported occurs when no enumeration primitive exists on this platform.
var ErrUnsupported = errors.New("module enumeration unsupported")

// Module is one loaded image as reported by the OS. It is only valid while the Visitor runs.
type Module struct {
	LoadBias uintptr // added to a symbol value to get its runtime address
	Path     string  // as reported, may be empty for the main program
}

// Visitor inspects a module and returns true to stop the walk.
type Visitor func(m Module) (stop bool)

// Enumerator walks loaded modules in OS order until the Visitor stops it.
type Enumerator interface {
	Walk(visit Visitor) error
}

// Func adapts a plain function to Enumerator.
type Func func(visit Visitor) error

func (f Func) Walk(visit Visitor) error {
	return f(visit)
}

// Unsupported is the Enumerator used where no primitive is available.
type Unsupported struct{}

func (Unsupported) Walk(Visitor) error {
	return ErrUnsupported
}

// Static enumerates a fixed list, it is mostly useful to embedders that already know their modules.
type Static []Module

func (s Static) Walk(visit Visitor) error {
	for _, m := range s {
		if visit(m) {
			return nil
		}
	}
	return nil
}
