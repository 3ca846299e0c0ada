package jvmgetter

import (
	"github.com/ZenLiuCN/jvmgetter/modules"
	"github.com/go-kit/log"
	"github.com/spf13/afero"
)

// Option configures a Resolver.
type Option func(*options)

type options struct {
	logger     log.Logger
	metrics    *Metrics
	platform   *Platform
	library    string
	property   func() string
	enumerator modules.Enumerator
	fs         afero.Fs
	extra      []Strategy

	symbol     string
	strategies []Strategy
}

func defaultOptions() *options {
	return &options{
		logger:   log.NewNopLogger(),
		property: systemProperty,
		fs:       afero.NewOsFs(),
		symbol:   SymbolName,
	}
}

// WithLogger sets the logger strategy failures are reported to.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records strategy attempts and failures into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPlatform overrides the capability descriptor, it decides which strategies are tried.
func WithPlatform(p Platform) Option {
	return func(o *options) {
		o.platform = &p
	}
}

// WithLibrary names the runtime library the fallback searches for, skipping the system property.
func WithLibrary(name string) Option {
	return func(o *options) {
		o.library = name
	}
}

// WithPropertyReader replaces the reader of the runtime library system property.
func WithPropertyReader(read func() string) Option {
	return func(o *options) {
		o.property = read
	}
}

// WithEnumerator replaces the loaded module enumerator used by the fallback.
func WithEnumerator(e modules.Enumerator) Option {
	return func(o *options) {
		o.enumerator = e
	}
}

// WithFs sets the file system the fallback reads module images from.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithStrategy appends s after the platform strategies. It is how optional strategies such as
// hostimage.Strategy join the chain.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.extra = append(o.extra, s)
	}
}

func withSymbol(name string) Option {
	return func(o *options) {
		o.symbol = name
	}
}

func withStrategies(s ...Strategy) Option {
	return func(o *options) {
		o.strategies = append([]Strategy{}, s...)
	}
}
