package elfimage

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"github.com/pkg/errors"
)

var (
	// ErrMalformed wraps every header, bounds or layout violation found while parsing.
	ErrMalformed = errors.New("malformed elf image")
	// ErrNoSymbols occurs when the image has neither .symtab nor .dynsym.
	ErrNoSymbols = errors.New("no symbol table")
	// ErrNotFound occurs when no symbol carries the requested name.
	ErrNotFound = errors.New("symbol not found")
)

// Image is a parsed view over the raw bytes of an ELF file. It owns the buffer, the tables
// are sub slices of it.
type Image struct {
	Class   elf.Class
	Order   binary.ByteOrder
	Type    elf.Type
	Machine elf.Machine
	Symbols *SymbolTable // SHT_SYMTAB, nil when stripped
	Dynamic *SymbolTable // SHT_DYNSYM, nil for static images
	data    []byte
}

// Parse validates data as an ELF image and locates its symbol tables together with the
// string tables they link to.
func Parse(data []byte) (img *Image, err error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "header: %v", err)
	}
	defer f.Close()
	img = &Image{
		Class:   f.Class,
		Order:   f.ByteOrder,
		Type:    f.Type,
		Machine: f.Machine,
		data:    data,
	}
	entsize, err := symbolSize(f.Class)
	if err != nil {
		return nil, err
	}
	for i, s := range f.Sections {
		if s.Type != elf.SHT_SYMTAB && s.Type != elf.SHT_DYNSYM {
			continue
		}
		var t *SymbolTable
		if t, err = img.table(f, i, entsize); err != nil {
			return nil, err
		}
		switch {
		case s.Type == elf.SHT_SYMTAB && img.Symbols == nil:
			img.Symbols = t
		case s.Type == elf.SHT_DYNSYM && img.Dynamic == nil:
			img.Dynamic = t
		}
	}
	if img.Symbols == nil && img.Dynamic == nil {
		return nil, ErrNoSymbols
	}
	return
}

func (img *Image) table(f *elf.File, i int, entsize int) (*SymbolTable, error) {
	s := f.Sections[i]
	raw, err := img.slice(s.Offset, s.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "section %d %q", i, s.Name)
	}
	if s.Entsize != 0 && s.Entsize != uint64(entsize) {
		return nil, errors.Wrapf(ErrMalformed, "section %d %q: entry size %d", i, s.Name, s.Entsize)
	}
	if len(raw)%entsize != 0 {
		return nil, errors.Wrapf(ErrMalformed, "section %d %q: size %d not a multiple of %d", i, s.Name, len(raw), entsize)
	}
	if s.Link == 0 || int(s.Link) >= len(f.Sections) {
		return nil, errors.Wrapf(ErrMalformed, "section %d %q: string table link %d", i, s.Name, s.Link)
	}
	l := f.Sections[s.Link]
	if l.Type != elf.SHT_STRTAB {
		return nil, errors.Wrapf(ErrMalformed, "section %d %q: linked section %q is %s", i, s.Name, l.Name, l.Type)
	}
	str, err := img.slice(l.Offset, l.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "section %d %q", s.Link, l.Name)
	}
	return &SymbolTable{
		Name:    s.Name,
		Type:    s.Type,
		Strings: str,
		class:   img.Class,
		order:   img.Order,
		entsize: entsize,
		raw:     raw,
	}, nil
}

// slice returns data[off:off+size] after checking it lies inside the buffer.
func (img *Image) slice(off, size uint64) ([]byte, error) {
	n := uint64(len(img.data))
	if off > n || size > n-off {
		return nil, errors.Wrapf(ErrMalformed, "range [%d, +%d) outside %d bytes", off, size, n)
	}
	return img.data[off : off+size], nil
}

// Bytes returns the buffer the image was parsed from.
func (img *Image) Bytes() []byte {
	return img.data
}

// Lookup scans .symtab and then .dynsym for name.
func (img *Image) Lookup(name string) (Entry, error) {
	for _, t := range []*SymbolTable{img.Symbols, img.Dynamic} {
		if t == nil {
			continue
		}
		if e, ok := t.Lookup(name); ok {
			return e, nil
		}
	}
	return Entry{}, errors.Wrap(ErrNotFound, name)
}

func symbolSize(c elf.Class) (int, error) {
	switch c {
	case elf.ELFCLASS32:
		return elf.Sym32Size, nil
	case elf.ELFCLASS64:
		return elf.Sym64Size, nil
	}
	return 0, errors.Wrapf(ErrMalformed, "class %s", c)
}
