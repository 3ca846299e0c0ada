//go:build goloader

package hostimage

import (
	"github.com/ZenLiuCN/jvmgetter"
	"github.com/pkg/errors"
	"github.com/pkujhd/goloader"
)

// Strategy reads the executable symbol table, goloader relocates every entry to its
// runtime address.
type Strategy struct{}

func (Strategy) Name() string {
	return "host-image"
}

func (Strategy) Find(symbol string) (jvmgetter.Sym, error) {
	syms := make(map[string]uintptr)
	if err := goloader.RegSymbol(syms); err != nil {
		return 0, errors.Wrapf(jvmgetter.ErrUnreadable, "executable: %v", err)
	}
	addr, ok := syms[symbol]
	if !ok || addr == 0 {
		return 0, errors.Wrap(jvmgetter.ErrSymbolNotFound, symbol)
	}
	return jvmgetter.Sym(addr), nil
}
