// Package elftest builds small synthetic ELF images for tests.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Symbol is one entry written into the generated table.
type Symbol struct {
	Name  string
	Value uint64
	Size  uint64
}

// Image describes the file Build produces.
type Image struct {
	Class   elf.Class        // defaults to ELFCLASS64
	Order   binary.ByteOrder // defaults to little endian
	Machine elf.Machine      // defaults to EM_AARCH64
	Table   elf.SectionType  // SHT_SYMTAB (default) or SHT_DYNSYM
	Symbols []Symbol
}

// Build lays out an ET_DYN image with a null section, the symbol table, its string table
// and the section name table, followed by the section header table.
func (m Image) Build() []byte {
	if m.Class == elf.ELFCLASSNONE {
		m.Class = elf.ELFCLASS64
	}
	if m.Order == nil {
		m.Order = binary.LittleEndian
	}
	if m.Machine == elf.EM_NONE {
		m.Machine = elf.EM_AARCH64
	}
	if m.Table == elf.SHT_NULL {
		m.Table = elf.SHT_SYMTAB
	}
	symName, strName := ".symtab", ".strtab"
	if m.Table == elf.SHT_DYNSYM {
		symName, strName = ".dynsym", ".dynstr"
	}

	shstr := []byte{0}
	nameOff := func(s string) uint32 {
		off := uint32(len(shstr))
		shstr = append(append(shstr, s...), 0)
		return off
	}
	shSym, shStr, shShstr := nameOff(symName), nameOff(strName), nameOff(".shstrtab")

	str := []byte{0}
	names := make([]uint32, len(m.Symbols))
	for i, s := range m.Symbols {
		names[i] = uint32(len(str))
		str = append(append(str, s.Name...), 0)
	}

	is64 := m.Class == elf.ELFCLASS64
	sym := new(bytes.Buffer)
	info := elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC)
	if is64 {
		write(sym, m.Order, elf.Sym64{})
		for i, s := range m.Symbols {
			write(sym, m.Order, elf.Sym64{Name: names[i], Info: info, Shndx: 1, Value: s.Value, Size: s.Size})
		}
	} else {
		write(sym, m.Order, elf.Sym32{})
		for i, s := range m.Symbols {
			write(sym, m.Order, elf.Sym32{Name: names[i], Info: info, Shndx: 1, Value: uint32(s.Value), Size: uint32(s.Size)})
		}
	}

	ehsize, shentsize, entsize := 64, 64, elf.Sym64Size
	if !is64 {
		ehsize, shentsize, entsize = 52, 40, elf.Sym32Size
	}
	symOff := align(ehsize, 8)
	strOff := symOff + sym.Len()
	shstrOff := strOff + len(str)
	shOff := align(shstrOff+len(shstr), 8)

	type section struct {
		name, typ, link, info uint32
		off, size, align, ent uint64
	}
	sections := []section{
		{},
		{name: shSym, typ: uint32(m.Table), link: 2, info: 1, off: uint64(symOff), size: uint64(sym.Len()), align: 8, ent: uint64(entsize)},
		{name: shStr, typ: uint32(elf.SHT_STRTAB), off: uint64(strOff), size: uint64(len(str)), align: 1},
		{name: shShstr, typ: uint32(elf.SHT_STRTAB), off: uint64(shstrOff), size: uint64(len(shstr)), align: 1},
	}

	out := new(bytes.Buffer)
	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(m.Class)
	if m.Order == binary.BigEndian {
		ident[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	} else {
		ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	}
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	if is64 {
		write(out, m.Order, elf.Header64{
			Ident: ident, Type: uint16(elf.ET_DYN), Machine: uint16(m.Machine), Version: uint32(elf.EV_CURRENT),
			Shoff: uint64(shOff), Ehsize: uint16(ehsize), Phentsize: 56,
			Shentsize: uint16(shentsize), Shnum: uint16(len(sections)), Shstrndx: 3,
		})
	} else {
		write(out, m.Order, elf.Header32{
			Ident: ident, Type: uint16(elf.ET_DYN), Machine: uint16(m.Machine), Version: uint32(elf.EV_CURRENT),
			Shoff: uint32(shOff), Ehsize: uint16(ehsize), Phentsize: 32,
			Shentsize: uint16(shentsize), Shnum: uint16(len(sections)), Shstrndx: 3,
		})
	}
	pad(out, symOff)
	out.Write(sym.Bytes())
	out.Write(str)
	out.Write(shstr)
	pad(out, shOff)
	for _, s := range sections {
		if is64 {
			write(out, m.Order, elf.Section64{
				Name: s.name, Type: s.typ, Off: s.off, Size: s.size,
				Link: s.link, Info: s.info, Addralign: s.align, Entsize: s.ent,
			})
		} else {
			write(out, m.Order, elf.Section32{
				Name: s.name, Type: s.typ, Off: uint32(s.off), Size: uint32(s.size),
				Link: s.link, Info: s.info, Addralign: uint32(s.align), Entsize: uint32(s.ent),
			})
		}
	}
	return out.Bytes()
}

// Build is a shorthand for a 64-bit little endian image with a .symtab holding syms.
func Build(syms ...Symbol) []byte {
	return Image{Symbols: syms}.Build()
}

func write(b *bytes.Buffer, o binary.ByteOrder, v any) {
	if err := binary.Write(b, o, v); err != nil {
		panic(err)
	}
}

func pad(b *bytes.Buffer, to int) {
	for b.Len() < to {
		b.WriteByte(0)
	}
}

func align(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}
