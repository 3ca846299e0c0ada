package elfimage

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Entry is one record of a symbol table.
type Entry struct {
	Name    uint32 // offset into the linked string table
	Value   uint64 // st_value, relative to the load bias for shared objects
	Size    uint64
	Info    byte
	Section elf.SectionIndex
}

func (e Entry) Type() elf.SymType {
	return elf.ST_TYPE(e.Info)
}

func (e Entry) Bind() elf.SymBind {
	return elf.ST_BIND(e.Info)
}

// StringTable is the raw content of a SHT_STRTAB section.
type StringTable []byte

// At returns the NUL terminated name starting at off, without the terminator.
func (s StringTable) At(off uint32) ([]byte, bool) {
	if uint64(off) >= uint64(len(s)) {
		return nil, false
	}
	b := s[off:]
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return nil, false
	}
	return b[:i], true
}

// SymbolTable is a view over a SHT_SYMTAB or SHT_DYNSYM section.
type SymbolTable struct {
	Name    string
	Type    elf.SectionType
	Strings StringTable

	class   elf.Class
	order   binary.ByteOrder
	entsize int
	raw     []byte
}

// Len returns the number of entries, including the reserved null entry.
func (t *SymbolTable) Len() int {
	return len(t.raw) / t.entsize
}

// Entry decodes the i-th record. i must be in [0, Len()).
func (t *SymbolTable) Entry(i int) (e Entry) {
	b := t.raw[i*t.entsize : (i+1)*t.entsize]
	o := t.order
	switch t.class {
	case elf.ELFCLASS32:
		e.Name = o.Uint32(b[0:4])
		e.Value = uint64(o.Uint32(b[4:8]))
		e.Size = uint64(o.Uint32(b[8:12]))
		e.Info = b[12]
		e.Section = elf.SectionIndex(o.Uint16(b[14:16]))
	default:
		e.Name = o.Uint32(b[0:4])
		e.Info = b[4]
		e.Section = elf.SectionIndex(o.Uint16(b[6:8]))
		e.Value = o.Uint64(b[8:16])
		e.Size = o.Uint64(b[16:24])
	}
	return
}

// NameOf resolves the name of e through the linked string table.
func (t *SymbolTable) NameOf(e Entry) (string, bool) {
	b, ok := t.Strings.At(e.Name)
	return string(b), ok
}

// Lookup scans the table in order and returns the first entry named exactly name.
func (t *SymbolTable) Lookup(name string) (Entry, bool) {
	want := []byte(name)
	for i, n := 1, t.Len(); i < n; i++ {
		e := t.Entry(i)
		if got, ok := t.Strings.At(e.Name); ok && bytes.Equal(got, want) {
			return e, true
		}
	}
	return Entry{}, false
}
