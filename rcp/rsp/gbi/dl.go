// Package gbi encodes display lists for the F3DEX geometry microcode.
//
// A display list is a sequence of 8 byte command records consumed by the RSP
// to transform vertices and emit rasterizer commands.  There is no implicit
// terminator, callers append End explicitly.
package gbi

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/clktmr/n64rom/rcp/cpu"
)

var ErrFieldOverflow = errors.New("gbi: field overflow")

// Command is one display list record, stored as two words to get endianess
// right.  The command ID sits in the high byte of the first word.
type Command struct{ W0, W1 uint32 }

// Vertex buffer geometry of the F3DEX microcode.  Slot indices are
// premultiplied by the per-vertex stride when packed into triangle commands.
const (
	vtxBufferSize = 32
	vtxStride     = 2
)

type MtxFlags uint8

const (
	MtxNoPush     MtxFlags = 0x00
	MtxPush       MtxFlags = 0x01
	MtxLoad       MtxFlags = 0x02
	MtxProjection MtxFlags = 0x04 // else modelview
)

// DisplayList collects encoded commands in emission order.  The zero value
// is an empty list.  Errors stick, Bytes reports the first one.
type DisplayList struct {
	cmds []Command
	err  error
}

func (dl *DisplayList) append(c Command) {
	if dl.err == nil {
		dl.cmds = append(dl.cmds, c)
	}
}

func (dl *DisplayList) fail(err error) {
	if dl.err == nil {
		dl.err = err
	}
}

func (dl *DisplayList) Len() int { return len(dl.cmds) }

func (dl *DisplayList) Commands() ([]Command, error) {
	if dl.err != nil {
		return nil, dl.err
	}
	return dl.cmds, nil
}

// Bytes encodes the list in memory order, 8 bytes per command.
func (dl *DisplayList) Bytes() ([]byte, error) {
	if dl.err != nil {
		return nil, dl.err
	}
	buf := make([]byte, 0, len(dl.cmds)*8)
	for _, c := range dl.cmds {
		buf = binary.BigEndian.AppendUint32(buf, c.W0)
		buf = binary.BigEndian.AppendUint32(buf, c.W1)
	}
	return buf, nil
}

// slot validates a vertex buffer slot index and premultiplies it by the
// buffer stride.
func slot(v int) (uint32, error) {
	if v < 0 || v >= vtxBufferSize {
		return 0, fmt.Errorf("%w: vertex slot %d", ErrFieldOverflow, v)
	}
	return uint32(v * vtxStride), nil
}

// addr validates a DMA source address: mappable and 8 byte aligned.  The
// virtual address is what goes on the wire.
func addr(virt uint32) (uint32, error) {
	if _, err := cpu.Physical(virt); err != nil {
		return 0, err
	}
	if err := cpu.CheckAlign(virt, 8); err != nil {
		return 0, err
	}
	return virt, nil
}

// Vertex loads n vertices from virt into the vertex buffer starting at slot
// start.
func (dl *DisplayList) Vertex(virt uint32, n, start int) {
	a, err := addr(virt)
	if err != nil {
		dl.fail(err)
		return
	}
	if n < 1 || start < 0 || start+n > vtxBufferSize {
		dl.fail(fmt.Errorf("%w: vertex load %d..%d", ErrFieldOverflow, start, start+n))
		return
	}
	dl.append(Command{
		W0: 0x01<<24 | uint32(n)<<12 | uint32(start)<<1,
		W1: a,
	})
}

// Tri1 draws a single triangle from vertex buffer slots.
func (dl *DisplayList) Tri1(v0, v1, v2 int) {
	s, err := slots(v0, v1, v2)
	if err != nil {
		dl.fail(err)
		return
	}
	dl.append(Command{W0: 0x05<<24 | s[0]<<16 | s[1]<<8 | s[2]})
}

// Tri2 draws two triangles with one command.
func (dl *DisplayList) Tri2(v0, v1, v2, v3, v4, v5 int) {
	s, err := slots(v0, v1, v2, v3, v4, v5)
	if err != nil {
		dl.fail(err)
		return
	}
	dl.append(Command{
		W0: 0x06<<24 | s[0]<<16 | s[1]<<8 | s[2],
		W1: s[3]<<16 | s[4]<<8 | s[5],
	})
}

// Matrix loads a 64 byte matrix from virt into the projection or modelview
// stack.
func (dl *DisplayList) Matrix(virt uint32, flags MtxFlags) {
	a, err := addr(virt)
	if err != nil {
		dl.fail(err)
		return
	}
	dl.append(Command{W0: 0xda<<24 | uint32(flags), W1: a})
}

// End terminates the display list.
func (dl *DisplayList) End() {
	dl.append(Command{W0: 0xdf00_0000})
}

func slots(vs ...int) ([]uint32, error) {
	out := make([]uint32, len(vs))
	for i, v := range vs {
		s, err := slot(v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
