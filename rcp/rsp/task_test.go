package rsp_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/clktmr/n64rom/rcp/rsp"
)

func TestTaskEncode(t *testing.T) {
	task := rsp.Task{
		Type:          rsp.TaskGfx,
		UCode:         0x8040_0000,
		UCodeSize:     0x1000,
		DRAMStack:     0x8030_0000,
		DRAMStackSize: 0x1800,
		Data:          0x8011_0000,
		DataSize:      0x2000,
	}
	buf, err := task.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != rsp.TaskSize {
		t.Fatalf("expected %d bytes, got %d", rsp.TaskSize, len(buf))
	}

	// Named field offsets are part of the wire contract.
	wants := map[int]uint32{
		0x00: 1,           // type
		0x04: 0,           // flags
		0x10: 0x8040_0000, // ucode
		0x14: 0x1000,      // ucode_size
		0x20: 0x8030_0000, // dram_stack
		0x24: 0x1800,      // dram_stack_size
		0x30: 0x8011_0000, // data_ptr
		0x34: 0x2000,      // data_size
		0x38: 0,           // yield_data_ptr
	}
	for off, want := range wants {
		if got := binary.BigEndian.Uint32(buf[off:]); got != want {
			t.Errorf("offset %#02x: expected %#08x, got %#08x", off, want, got)
		}
	}
}

func TestTaskUnaligned(t *testing.T) {
	task := rsp.Task{Type: rsp.TaskGfx, Data: 0x8011_0004}
	if _, err := task.Encode(); !errors.Is(err, rsp.ErrUnaligned) {
		t.Fatalf("expected ErrUnaligned, got %v", err)
	}
}

func TestUCodeApply(t *testing.T) {
	u := rsp.UCode{Name: "F3DEX", Code: 0x8040_0000, Size: 0x1000}
	var task rsp.Task
	u.Apply(&task)
	if task.UCode != u.Code || task.UCodeSize != u.Size {
		t.Fatal("ucode fields not applied")
	}
}
