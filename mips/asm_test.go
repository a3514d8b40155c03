package mips_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/clktmr/n64rom/mips"
)

func words(ws ...uint32) []byte {
	buf := make([]byte, 0, len(ws)*4)
	for _, w := range ws {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}
	return buf
}

// The interrupt polling loop from the boot code: branch displacement must
// come out as the label distance, not a hand-counted constant.
func TestAssemblePollLoop(t *testing.T) {
	a := mips.NewAssembler(0x8000_0400)
	a.Label("poll")
	a.Lui(mips.T0, 0xa430)
	a.Ori(mips.T0, mips.T0, 0x0008)
	a.Lw(mips.T1, 0, mips.T0)
	a.Andi(mips.T1, mips.T1, 0x08)
	a.Beq(mips.T1, mips.Zero, "poll")
	a.Nop()

	got, err := a.Assemble()
	if err != nil {
		t.Fatal(err)
	}
	want := words(
		0x3c08a430,
		0x35080008,
		0x8d090000,
		0x31290008,
		0x1120fffb, // back to "poll", -5 words from the delay slot
		0x00000000,
	)
	if !bytes.Equal(got, want) {
		t.Fatalf("expected\n% x\ngot\n% x", want, got)
	}
}

func TestAssembleJump(t *testing.T) {
	a := mips.NewAssembler(0x8000_0400)
	a.Label("loop")
	a.Nop()
	a.J("loop")
	a.Nop()

	got, err := a.Assemble()
	if err != nil {
		t.Fatal(err)
	}
	want := words(0x00000000, 0x0800_0100, 0x00000000)
	if !bytes.Equal(got, want) {
		t.Fatalf("expected\n% x\ngot\n% x", want, got)
	}
}

func TestAssembleLi(t *testing.T) {
	a := mips.NewAssembler(0x8000_0400)
	a.Li(mips.SP, 0x801f_fff0) // lui+ori
	a.Li(mips.T0, 0x8010_0000) // lui only
	a.Li(mips.T1, 0x0000_1800) // ori only

	got, err := a.Assemble()
	if err != nil {
		t.Fatal(err)
	}
	want := words(0x3c1d801f, 0x37bdfff0, 0x3c088010, 0x34091800)
	if !bytes.Equal(got, want) {
		t.Fatalf("expected\n% x\ngot\n% x", want, got)
	}
}

func TestAssembleErrors(t *testing.T) {
	t.Run("undefinedLabel", func(t *testing.T) {
		a := mips.NewAssembler(0x8000_0400)
		a.Beq(mips.T0, mips.Zero, "nowhere")
		a.Nop()
		if _, err := a.Assemble(); !errors.Is(err, mips.ErrLabel) {
			t.Fatalf("expected ErrLabel, got %v", err)
		}
	})
	t.Run("duplicateLabel", func(t *testing.T) {
		a := mips.NewAssembler(0x8000_0400)
		a.Label("x")
		a.Nop()
		a.Label("x")
		if _, err := a.Assemble(); !errors.Is(err, mips.ErrLabel) {
			t.Fatalf("expected ErrLabel, got %v", err)
		}
	})
	t.Run("stickyOverflow", func(t *testing.T) {
		a := mips.NewAssembler(0x8000_0400)
		a.Lui(mips.T0, 0x1_0000)
		a.Nop()
		if _, err := a.Assemble(); !errors.Is(err, mips.ErrFieldOverflow) {
			t.Fatalf("expected ErrFieldOverflow, got %v", err)
		}
	})
	t.Run("badBase", func(t *testing.T) {
		a := mips.NewAssembler(0x0000_0400)
		a.Nop()
		if _, err := a.Assemble(); err == nil {
			t.Fatal("expected error for base outside KSEG0/KSEG1")
		}
	})
}

func TestAddr(t *testing.T) {
	a := mips.NewAssembler(0x8000_0400)
	a.Nop()
	a.Nop()
	if a.Addr() != 0x8000_0408 {
		t.Fatalf("expected 0x80000408, got %#08x", a.Addr())
	}
}
