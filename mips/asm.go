package mips

import (
	"errors"
	"fmt"

	"github.com/clktmr/n64rom/rcp/cpu"
)

var ErrLabel = errors.New("mips: label error")

// Assembler emits a straight-line instruction sequence with symbolic branch
// and jump targets.  Since every instruction is exactly one word, label
// addresses are known after the first pass and resolved in Assemble.
//
// Errors stick: after the first failure all further emits are ignored and
// Assemble reports the error.  Delay slots are not filled implicitly, emit
// Nop where needed.
type Assembler struct {
	b      uint32 // virtual address of the first instruction
	instrs []Instr
	labels map[string]int
	refs   []ref
	err    error
}

type ref struct {
	idx    int // index of the referencing instruction
	label  string
	branch bool // pc-relative, else absolute jump
}

func NewAssembler(base uint32) *Assembler {
	a := &Assembler{b: base, labels: make(map[string]int)}
	if _, err := cpu.Physical(base); err != nil {
		a.err = err
	} else if err := cpu.CheckAlign(base, 4); err != nil {
		a.err = err
	}
	return a
}

// Base returns the virtual address the sequence starts at.
func (a *Assembler) Base() uint32 { return a.b }

// Addr returns the virtual address of the next emitted instruction.
func (a *Assembler) Addr() uint32 { return a.b + uint32(len(a.instrs))*4 }

func (a *Assembler) emit(i Instr, err error) {
	if a.err == nil && err != nil {
		a.err = err
	}
	a.instrs = append(a.instrs, i)
}

// Label declares name to refer to the address of the next instruction.
func (a *Assembler) Label(name string) {
	if _, ok := a.labels[name]; ok && a.err == nil {
		a.err = fmt.Errorf("%w: duplicate label %q", ErrLabel, name)
	}
	a.labels[name] = len(a.instrs)
}

func (a *Assembler) Nop()                       { a.emit(Nop(), nil) }
func (a *Assembler) Lui(rt Reg, imm int)        { a.emit(Lui(rt, imm)) }
func (a *Assembler) Ori(rt, rs Reg, imm int)    { a.emit(Ori(rt, rs, imm)) }
func (a *Assembler) Andi(rt, rs Reg, imm int)   { a.emit(Andi(rt, rs, imm)) }
func (a *Assembler) Addiu(rt, rs Reg, imm int)  { a.emit(Addiu(rt, rs, imm)) }
func (a *Assembler) Lw(rt Reg, off int, b Reg)  { a.emit(Lw(rt, off, b)) }
func (a *Assembler) Sw(rt Reg, off int, b Reg)  { a.emit(Sw(rt, off, b)) }

// Li loads a 32bit immediate with lui/ori, using a single instruction where
// the value allows.
func (a *Assembler) Li(r Reg, v uint32) {
	hi, lo := int(v>>16), int(v&0xffff)
	switch {
	case hi == 0:
		a.Ori(r, Zero, lo)
	case lo == 0:
		a.Lui(r, hi)
	default:
		a.Lui(r, hi)
		a.Ori(r, r, lo)
	}
}

func (a *Assembler) Beq(rs, rt Reg, label string) {
	a.refs = append(a.refs, ref{len(a.instrs), label, true})
	a.emit(Beq(rs, rt, 0))
}

func (a *Assembler) Bne(rs, rt Reg, label string) {
	a.refs = append(a.refs, ref{len(a.instrs), label, true})
	a.emit(Bne(rs, rt, 0))
}

func (a *Assembler) J(label string) {
	a.refs = append(a.refs, ref{len(a.instrs), label, false})
	a.emit(Instr(jOp.opcode), nil)
}

// Assemble resolves all label references and returns the sequence in memory
// order.
func (a *Assembler) Assemble() ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	for _, r := range a.refs {
		idx, ok := a.labels[r.label]
		if !ok {
			return nil, fmt.Errorf("%w: undefined label %q", ErrLabel, r.label)
		}
		if r.branch {
			// displacement relative to the delay slot, in words
			disp := idx - (r.idx + 1)
			if disp < -1<<15 || disp > 1<<15-1 {
				return nil, fmt.Errorf("%w: branch to %q displacement %d words",
					ErrFieldOverflow, r.label, disp)
			}
			a.instrs[r.idx] |= Instr(uint32(disp) & 0xffff)
		} else {
			addr := a.b + uint32(idx)*4
			pc := a.b + uint32(r.idx)*4 + 4
			if addr>>28 != pc>>28 {
				return nil, fmt.Errorf("%w: jump to %q leaves 256MB region",
					ErrFieldOverflow, r.label)
			}
			a.instrs[r.idx] |= Instr(addr >> 2 & 0x03ff_ffff)
		}
	}

	buf := make([]byte, 0, len(a.instrs)*4)
	for _, i := range a.instrs {
		buf = append(buf, i.Bytes()...)
	}
	return buf, nil
}
