package jvmgetter

import (
	"debug/elf"
	"math/rand"
	"os"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/ZenLiuCN/jvmgetter/elftest"
	"github.com/ZenLiuCN/jvmgetter/modules"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	pathLibc = "/system/lib64/libc.so"
	pathArt  = "/apex/com.android.art/lib64/libart.so"
	pathArtd = "/apex/com.android.art/lib64/libartd.so"
	pathLibm = "/system/lib64/libm.so"
	symbol   = "TargetSymbol"
	bias     = uintptr(0x7a3c200000)
	value    = uint64(0x51a2f0)
)

var debugging = false

// countingModules counts every module handed to the visitor.
type countingModules struct {
	modules.Static
	visited int
}

func (c *countingModules) Walk(visit modules.Visitor) error {
	return c.Static.Walk(func(m modules.Module) bool {
		c.visited++
		return visit(m)
	})
}

func loaded() *countingModules {
	return &countingModules{Static: modules.Static{
		{LoadBias: 0x7a3b000000, Path: pathLibc},
		{LoadBias: bias, Path: pathArt},
		{LoadBias: 0x7a3d000000, Path: pathLibm},
		{LoadBias: 0x7a3e000000, Path: pathArtd},
	}}
}

func memFs(t *testing.T, files map[string][]byte) afero.Fs {
	fs := afero.NewMemMapFs()
	for p, data := range files {
		require.NoError(t, afero.WriteFile(fs, p, data, 0o644))
	}
	return fs
}

func fallback(fs afero.Fs, e modules.Enumerator, opts ...Option) *Resolver {
	return NewResolver(append([]Option{
		WithPlatform(Platform{Hidden: true}),
		WithEnumerator(e),
		WithFs(fs),
		WithPropertyReader(func() string { return "" }),
		withSymbol(symbol),
	}, opts...)...)
}

func artImage(syms ...elftest.Symbol) []byte {
	return elftest.Build(append([]elftest.Symbol{
		{Name: "JNI_CreateJavaVM", Value: 0x51a000},
		{Name: "JNI_GetDefaultJavaVMInitArgs", Value: 0x51a100},
	}, syms...)...)
}

func TestFallbackResolves(t *testing.T) {
	fs := memFs(t, map[string][]byte{pathArt: artImage(elftest.Symbol{Name: symbol, Value: value})})
	sym, ok := fallback(fs, loaded()).Resolve()
	require.True(t, ok)
	require.Equal(t, Sym(bias+uintptr(value)), sym)
	if debugging {
		t.Log(spew.Sdump(sym))
	}
}

func TestFallbackDefaultLibrary(t *testing.T) {
	s := &fallbackStrategy{property: func() string { return "" }}
	require.Equal(t, "libart.so", s.libraryName())
	s.property = nil
	require.Equal(t, "libart.so", s.libraryName())
	s.property = func() string { return "libartd.so" }
	require.Equal(t, "libartd.so", s.libraryName())
	s.library = "libjvm.so"
	require.Equal(t, "libjvm.so", s.libraryName())
}

func TestFallbackPropertyPicksLibrary(t *testing.T) {
	fs := memFs(t, map[string][]byte{
		pathArt:  artImage(elftest.Symbol{Name: symbol, Value: 0x10}),
		pathArtd: artImage(elftest.Symbol{Name: symbol, Value: value}),
	})
	mods := loaded()
	sym, ok := fallback(fs, mods, WithPropertyReader(func() string { return "libartd.so" })).Resolve()
	require.True(t, ok)
	require.Equal(t, Sym(0x7a3e000000+uintptr(value)), sym)
	require.Equal(t, 4, mods.visited)
}

func TestFallbackStopsAtMatch(t *testing.T) {
	fs := memFs(t, map[string][]byte{pathArt: artImage(elftest.Symbol{Name: symbol, Value: value})})
	mods := loaded()
	_, ok := fallback(fs, mods).Resolve()
	require.True(t, ok)
	require.Equal(t, 2, mods.visited)
}

func TestFallbackFirstMatchWins(t *testing.T) {
	// only the second copy exists on disk, it must never be read
	fs := memFs(t, map[string][]byte{"/data/app/lib/libart.so": artImage(elftest.Symbol{Name: symbol, Value: value})})
	mods := &countingModules{Static: modules.Static{
		{LoadBias: 0x1000, Path: pathLibc},
		{LoadBias: 0x2000, Path: pathArt},
		{LoadBias: 0x3000, Path: "/data/app/lib/libart.so"},
	}}
	s := fallback(fs, mods).strategies[0]
	_, err := s.Find(symbol)
	require.ErrorIs(t, err, ErrUnreadable)
	require.Equal(t, 2, mods.visited)
}

func TestFallbackSuffixIsCaseSensitive(t *testing.T) {
	fs := memFs(t, map[string][]byte{"/system/lib64/LIBART.SO": artImage(elftest.Symbol{Name: symbol, Value: value})})
	mods := &countingModules{Static: modules.Static{{LoadBias: 0x1000, Path: "/system/lib64/LIBART.SO"}}}
	_, err := fallback(fs, mods).strategies[0].Find(symbol)
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestFallbackFailures(t *testing.T) {
	random := make([]byte, 4096)
	rand.New(rand.NewSource(7)).Read(random)
	tests := []struct {
		name  string
		files map[string][]byte
		mods  modules.Enumerator
		want  error
	}{
		{"module-not-found", nil, modules.Static{{Path: pathLibc}}, ErrModuleNotFound},
		{"unreadable", nil, loaded(), ErrUnreadable},
		{"malformed", map[string][]byte{pathArt: random}, loaded(), ErrMalformedImage},
		{"empty-file", map[string][]byte{pathArt: {}}, loaded(), ErrMalformedImage},
		{"symbol-not-found", map[string][]byte{pathArt: artImage()}, loaded(), ErrSymbolNotFound},
		{"unsupported", nil, modules.Unsupported{}, ErrPlatformUnsupported},
		{"enumerate-error", nil, modules.Func(func(modules.Visitor) error { return errors.New("maps: permission denied") }), ErrModuleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := NewMetrics(reg)
			r := fallback(memFs(t, tt.files), tt.mods, WithMetrics(m))
			_, err := r.strategies[0].Find(symbol)
			require.ErrorIs(t, err, tt.want)

			sym, ok := r.Resolve()
			require.False(t, ok)
			require.Zero(t, sym)
			require.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("fallback", reason(tt.want))))
		})
	}
}

func TestFallbackDynsym(t *testing.T) {
	img := elftest.Image{Table: elf.SHT_DYNSYM, Symbols: []elftest.Symbol{{Name: symbol, Value: value}}}
	fs := memFs(t, map[string][]byte{pathArt: img.Build()})
	sym, ok := fallback(fs, loaded()).Resolve()
	require.True(t, ok)
	require.Equal(t, Sym(bias+uintptr(value)), sym)
}

func TestFallbackOsFs(t *testing.T) {
	dir := t.TempDir()
	p := dir + "/lib64/libart.so"
	fs := afero.NewOsFs()
	fn.Panic(fs.MkdirAll(dir+"/lib64", 0o755))
	fn.Panic(afero.WriteFile(fs, p, artImage(elftest.Symbol{Name: symbol, Value: value}), 0o644))
	mods := &countingModules{Static: modules.Static{{LoadBias: bias, Path: p}}}
	sym, ok := fallback(fs, mods).Resolve()
	require.True(t, ok)
	require.Equal(t, Sym(bias+uintptr(value)), sym)
	_, err := os.Stat(p)
	require.NoError(t, err)
}

func TestFallbackModulesVisitedMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	fs := memFs(t, map[string][]byte{pathArt: artImage(elftest.Symbol{Name: symbol, Value: value})})
	_, ok := fallback(fs, loaded(), WithMetrics(m)).Resolve()
	require.True(t, ok)
	require.Equal(t, 2.0, testutil.ToFloat64(m.ModulesVisited))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Attempts.WithLabelValues("fallback")))
}
