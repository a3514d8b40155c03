// Package rsp encodes task descriptors for the signal processor.
//
// A task descriptor is the fixed 64 byte control block handed to the RSP via
// DMEM, describing where to find microcode, its data, the DRAM stack and the
// input display list.  Pointer fields are raw addresses in the producer's
// address space and are not validated against present memory.
package rsp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrUnaligned = errors.New("rsp: unaligned task pointer")

type TaskType uint32

const (
	TaskGfx TaskType = 1
	TaskAud TaskType = 2
)

// Task mirrors the descriptor's wire layout field by field.  All pointers
// are virtual addresses; size fields are in bytes.
type Task struct {
	Type          TaskType
	Flags         uint32
	UCodeBoot     uint32
	UCodeBootSize uint32
	UCode         uint32
	UCodeSize     uint32
	UCodeData     uint32
	UCodeDataSize uint32
	DRAMStack     uint32
	DRAMStackSize uint32
	OutputBuff    uint32
	OutputBuffLen uint32
	Data          uint32
	DataSize      uint32
	YieldData     uint32
	YieldDataSize uint32
}

// TaskSize is the descriptor's wire size.
const TaskSize = 64

// Encode packs the descriptor into its 64 byte big-endian record.  All
// non-zero pointer fields must be 8 byte aligned for the RSP's DMA engine.
func (t *Task) Encode() ([TaskSize]byte, error) {
	var buf [TaskSize]byte
	ptrs := map[string]uint32{
		"ucode_boot": t.UCodeBoot,
		"ucode":      t.UCode,
		"ucode_data": t.UCodeData,
		"dram_stack": t.DRAMStack,
		"output":     t.OutputBuff,
		"data":       t.Data,
		"yield_data": t.YieldData,
	}
	for _, name := range []string{"ucode_boot", "ucode", "ucode_data", "dram_stack", "output", "data", "yield_data"} {
		if p := ptrs[name]; p&0x7 != 0 {
			return buf, fmt.Errorf("%w: %s=%#08x", ErrUnaligned, name, p)
		}
	}

	for i, w := range []uint32{
		uint32(t.Type), t.Flags,
		t.UCodeBoot, t.UCodeBootSize,
		t.UCode, t.UCodeSize,
		t.UCodeData, t.UCodeDataSize,
		t.DRAMStack, t.DRAMStackSize,
		t.OutputBuff, t.OutputBuffLen,
		t.Data, t.DataSize,
		t.YieldData, t.YieldDataSize,
	} {
		binary.BigEndian.PutUint32(buf[i*4:], w)
	}
	return buf, nil
}
