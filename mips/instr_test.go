package mips_test

import (
	"errors"
	"testing"

	"github.com/clktmr/n64rom/mips"
)

// Words verified against a reference assembler.
func TestEncode(t *testing.T) {
	tests := map[string]struct {
		got  func() (mips.Instr, error)
		want mips.Instr
	}{
		"lui sp":    {func() (mips.Instr, error) { return mips.Lui(mips.SP, 0x801f) }, 0x3c1d801f},
		"ori sp":    {func() (mips.Instr, error) { return mips.Ori(mips.SP, mips.SP, 0xfff0) }, 0x37bdfff0},
		"lui t0":    {func() (mips.Instr, error) { return mips.Lui(mips.T0, 0x8020) }, 0x3c088020},
		"sw zero":   {func() (mips.Instr, error) { return mips.Sw(mips.Zero, 0, mips.T0) }, 0xad000000},
		"sw t1+4":   {func() (mips.Instr, error) { return mips.Sw(mips.T1, 4, mips.T0) }, 0xad090004},
		"lw t1":     {func() (mips.Instr, error) { return mips.Lw(mips.T1, 0, mips.T0) }, 0x8d090000},
		"ori t1":    {func() (mips.Instr, error) { return mips.Ori(mips.T1, mips.Zero, 0x0800) }, 0x34090800},
		"andi t1":   {func() (mips.Instr, error) { return mips.Andi(mips.T1, mips.T1, 0x08) }, 0x31290008},
		"addiu t1":  {func() (mips.Instr, error) { return mips.Addiu(mips.T1, mips.T1, 1) }, 0x25290001},
		"beq back":  {func() (mips.Instr, error) { return mips.Beq(mips.T1, mips.Zero, -7) }, 0x1120fff9},
		"j":         {func() (mips.Instr, error) { return mips.J(0x8000_0400) }, 0x0800_0100},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.got()
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEncodeOverflow(t *testing.T) {
	tests := map[string]func() (mips.Instr, error){
		"lui imm17":    func() (mips.Instr, error) { return mips.Lui(mips.T0, 0x1_0000) },
		"ori negative": func() (mips.Instr, error) { return mips.Ori(mips.T0, mips.T0, -1) },
		"addiu big":    func() (mips.Instr, error) { return mips.Addiu(mips.T0, mips.T0, 0x8000) },
		"sw offset":    func() (mips.Instr, error) { return mips.Sw(mips.T0, 0x1_0000, mips.T1) },
		"beq far":      func() (mips.Instr, error) { return mips.Beq(mips.T0, mips.T1, 1<<15) },
		"beq farback":  func() (mips.Instr, error) { return mips.Beq(mips.T0, mips.T1, -1<<15-1) },
		"j unaligned":  func() (mips.Instr, error) { return mips.J(0x8000_0401) },
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tc(); !errors.Is(err, mips.ErrFieldOverflow) {
				t.Fatalf("expected ErrFieldOverflow, got %v", err)
			}
		})
	}
}

func TestBytes(t *testing.T) {
	i, err := mips.Lui(mips.SP, 0x801f)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x3c, 0x1d, 0x80, 0x1f}
	for k, b := range i.Bytes() {
		if b != want[k] {
			t.Fatalf("byte %d: expected %#02x, got %#02x", k, want[k], b)
		}
	}
}
