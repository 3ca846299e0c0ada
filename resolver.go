package jvmgetter

import (
	"github.com/ZenLiuCN/jvmgetter/modules"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Strategy is one way of locating a symbol in the current process.
type Strategy interface {
	Name() string
	Find(symbol string) (Sym, error)
}

// Resolver tries its strategies in a fixed priority order and keeps the first hit.
//
// A Resolver holds no state between calls: every Resolve repeats the whole chain.
type Resolver struct {
	symbol     string
	strategies []Strategy
	logger     log.Logger
	metrics    *Metrics
}

// NewResolver builds the strategy chain for the current platform:
//
//  1. direct lookup in the process symbol table, when the platform has one
//  2. on-disk runtime library parsing, when the platform hides the symbol
//  3. every strategy added with [WithStrategy], in order
func NewResolver(opts ...Option) *Resolver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	r := &Resolver{
		symbol:  o.symbol,
		logger:  o.logger,
		metrics: o.metrics,
	}
	if o.strategies != nil {
		r.strategies = o.strategies
		return r
	}
	p := CurrentPlatform()
	if o.platform != nil {
		p = *o.platform
	}
	if p.Direct {
		r.strategies = append(r.strategies, directStrategy{})
	}
	if p.Hidden {
		e := o.enumerator
		if e == nil {
			e = modules.Default()
		}
		r.strategies = append(r.strategies, &fallbackStrategy{
			library:    o.library,
			property:   o.property,
			enumerator: e,
			fs:         o.fs,
			logger:     o.logger,
			metrics:    o.metrics,
		})
	}
	r.strategies = append(r.strategies, o.extra...)
	return r
}

// Strategies returns the names of the strategies in the order they are tried.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Resolve returns the address found by the first successful strategy.
func (r *Resolver) Resolve() (Sym, bool) {
	for _, s := range r.strategies {
		name := s.Name()
		r.metrics.attempt(name)
		sym, err := s.Find(r.symbol)
		if err == nil && sym != 0 {
			level.Debug(r.logger).Log("msg", "symbol resolved", "strategy", name, "symbol", r.symbol, "addr", uintptr(sym))
			return sym, true
		}
		if err == nil {
			err = ErrSymbolNotFound
		}
		r.metrics.failure(name, err)
		level.Debug(r.logger).Log("msg", "strategy failed", "strategy", name, "symbol", r.symbol, "reason", reason(err), "err", err)
	}
	return 0, false
}

// FindSym locates JNI_GetCreatedJavaVMs and returns its raw address.
func FindSym(opts ...Option) (Sym, bool) {
	return NewResolver(opts...).Resolve()
}

// Find locates JNI_GetCreatedJavaVMs and returns it as a callable function.
func Find(opts ...Option) (GetCreatedJavaVMs, bool) {
	sym, ok := FindSym(opts...)
	if !ok {
		return nil, false
	}
	return sym.GetCreatedJavaVMs(), true
}
