// Package mips encodes VR4300 machine instructions as big-endian words.
//
// Each instruction family carries its bit layout as data, so packing and
// range checking are mechanical.  Operand values that don't fit their field
// fail with ErrFieldOverflow instead of wrapping silently.
package mips

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrFieldOverflow = errors.New("mips: operand exceeds field width")

// Instr is a single encoded instruction.
type Instr uint32

// Bytes returns the instruction in memory order.
func (i Instr) Bytes() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(i))
}

func (i Instr) String() string { return fmt.Sprintf("%#08x", uint32(i)) }

type field struct {
	name   string
	shift  uint
	width  uint
	signed bool
}

type layout struct {
	name   string
	opcode uint32
	fields []field
}

func (l *layout) encode(vals ...int64) (Instr, error) {
	word := l.opcode
	for i, f := range l.fields {
		v := vals[i]
		var lo, hi int64
		if f.signed {
			lo, hi = -1<<(f.width-1), 1<<(f.width-1)-1
		} else {
			lo, hi = 0, 1<<f.width-1
		}
		if v < lo || v > hi {
			return 0, fmt.Errorf("%w: %s field %s value %d", ErrFieldOverflow, l.name, f.name, v)
		}
		word |= (uint32(v) & (1<<f.width - 1)) << f.shift
	}
	return Instr(word), nil
}

// Common operand fields.  Memory offsets and branch displacements are signed,
// logical immediates are zero-extended by the hardware and therefore unsigned
// here.
var (
	rs      = field{"rs", 21, 5, false}
	rt      = field{"rt", 16, 5, false}
	base    = field{"base", 21, 5, false}
	imm     = field{"imm", 0, 16, false}
	simm    = field{"imm", 0, 16, true}
	off     = field{"offset", 0, 16, true}
	target  = field{"target", 0, 26, false}
)

var (
	luiOp   = layout{"lui", 0x0f << 26, []field{rt, imm}}
	oriOp   = layout{"ori", 0x0d << 26, []field{rs, rt, imm}}
	andiOp  = layout{"andi", 0x0c << 26, []field{rs, rt, imm}}
	addiuOp = layout{"addiu", 0x09 << 26, []field{rs, rt, simm}}
	lwOp    = layout{"lw", 0x23 << 26, []field{base, rt, off}}
	swOp    = layout{"sw", 0x2b << 26, []field{base, rt, off}}
	beqOp   = layout{"beq", 0x04 << 26, []field{rs, rt, off}}
	bneOp   = layout{"bne", 0x05 << 26, []field{rs, rt, off}}
	jOp     = layout{"j", 0x02 << 26, []field{target}}
)

// Operand order follows assembly notation, e.g. Ori(T1, T0, 8) is
// "ori $t1, $t0, 8" and Sw(T1, 4, T0) is "sw $t1, 4($t0)".

func Lui(rt Reg, imm int) (Instr, error)       { return luiOp.encode(int64(rt), int64(imm)) }
func Ori(rt, rs Reg, imm int) (Instr, error)   { return oriOp.encode(int64(rs), int64(rt), int64(imm)) }
func Andi(rt, rs Reg, imm int) (Instr, error)  { return andiOp.encode(int64(rs), int64(rt), int64(imm)) }
func Addiu(rt, rs Reg, imm int) (Instr, error) { return addiuOp.encode(int64(rs), int64(rt), int64(imm)) }

func Lw(rt Reg, offset int, base Reg) (Instr, error) {
	return lwOp.encode(int64(base), int64(rt), int64(offset))
}

func Sw(rt Reg, offset int, base Reg) (Instr, error) {
	return swOp.encode(int64(base), int64(rt), int64(offset))
}

// Beq encodes a branch with an already resolved displacement, counted in
// words relative to the delay slot.  Use Assembler for symbolic targets.
func Beq(rs, rt Reg, offset int) (Instr, error) {
	return beqOp.encode(int64(rs), int64(rt), int64(offset))
}

func Bne(rs, rt Reg, offset int) (Instr, error) {
	return bneOp.encode(int64(rs), int64(rt), int64(offset))
}

// J encodes an absolute jump to a word-aligned virtual address.  The upper
// four address bits are not encoded, the assembler checks they match the
// jump's own region.
func J(addr uint32) (Instr, error) {
	if addr&0x3 != 0 {
		return 0, fmt.Errorf("%w: j target %#08x not word aligned", ErrFieldOverflow, addr)
	}
	return jOp.encode(int64(addr >> 2 & 0x03ff_ffff))
}

// Nop is the canonical no-op (sll $zero, $zero, 0), used to fill delay slots.
func Nop() Instr { return 0 }
