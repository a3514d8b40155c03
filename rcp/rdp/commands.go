// Package rdp encodes low-level RDP commands into their packed command-word
// format.  The commands are not executed, they are collected in a DisplayList
// whose byte image can be placed in a cartridge and handed to the RDP by the
// code that boots from it.
package rdp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/clktmr/n64rom/rcp/cpu"
	"github.com/clktmr/n64rom/rcp/fixed"
)

var ErrFieldOverflow = errors.New("rdp: field overflow")

// Each RDP command is a 64-bit dword, but needs to be stored as two words to
// get endianess right.  The command ID sits in the high byte of the upper
// word; only its low 6 bits are decoded by the hardware.
type Command struct{ UW, LW uint32 }

type ImageFormat uint32

const (
	RGBA ImageFormat = iota << 21
	YUV
	ColorIdx // Color Palette
	IA       // Intensity with alpha
	I        // Intensity
)

type BitDepth uint32

const (
	BPP4 BitDepth = iota << 19
	BPP8
	BPP16
	BPP32
)

type SyncCommand uint32

const (
	// Waits until all previous commands have finished reading and writing
	// to RDRAM.  Additionally raises the RDP interrupt.
	SyncFull SyncCommand = 0x2900_0000
	SyncLoad SyncCommand = 0x3100_0000
	SyncPipe SyncCommand = 0x2700_0000

	// Writing to a tile waits until an immediately previous command
	// finished reading from the tile.
	SyncTile SyncCommand = 0x2800_0000
)

// Mode flags for the SetOtherModes() command.
type ModeFlags uint64

const (
	AlphaCompare ModeFlags = 1 << iota
	DitherAlpha
	ZSource
	AntiAlias
	ZCompare
	ZUpdate
	ImageRead
	ColorOnCoverage
	CvgTimesAlpha ModeFlags = 1 << (iota + 4)
	AlphaCvgSelect
	ForceBlend
	ChromaKeying ModeFlags = 1 << (iota + 29)
	ConvertOne
	BiLerp1
	BiLerp0
	MidTexel
	SampleType
	TLUTType
	TLUT
	TextureLOD
	TextureSharpen
	TextureDetail
	TexturePerspective
	AtomicPrimitive = 1 << 55
)

const (
	CycleTypeOne ModeFlags = iota << 52
	CycleTypeTwo
	CycleTypeCopy
	CycleTypeFill
)

const (
	RGBDitherMagicSquare ModeFlags = iota << 38
	RGBDitherBayer
	RGBDitherNoise
	RGBDitherNone
)

const (
	AlphaDitherPattern ModeFlags = iota << 36
	AlphaDitherInvPattern
	AlphaDitherNoise
	AlphaDitherNone
)

type InterlaceFrame uint8

const (
	InterlaceNone InterlaceFrame = 0 // draw all lines
	InterlaceOdd  InterlaceFrame = 2 // skip odd lines
	InterlaceEven InterlaceFrame = 3 // skip even lines
)

// DisplayList collects encoded commands in emission order.  The zero value is
// an empty list.  Errors stick: after the first failed command no further
// commands are recorded and Bytes reports the error.
type DisplayList struct {
	cmds  []Command
	err   error
	bpp   BitDepth
	fbSet bool
}

func (dl *DisplayList) append(cmds ...Command) {
	if dl.err == nil {
		dl.cmds = append(dl.cmds, cmds...)
	}
}

func (dl *DisplayList) fail(err error) {
	if dl.err == nil {
		dl.err = err
	}
}

// Len returns the number of recorded commands.
func (dl *DisplayList) Len() int { return len(dl.cmds) }

// Commands returns the recorded command words.
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
		buf = binary.BigEndian.AppendUint32(buf, c.UW)
		buf = binary.BigEndian.AppendUint32(buf, c.LW)
	}
	return buf, nil
}

// coord converts a pixel coordinate to its 10.2 fixed-point command word
// field.
func coord(v int) (uint32, error) {
	if v < 0 || v > 1<<10-1 {
		return 0, fmt.Errorf("%w: coordinate %d", ErrFieldOverflow, v)
	}
	return uint32(fixed.UInt10_2U(v)), nil
}

func coords(r image.Rectangle) (x1, y1, x2, y2 uint32, err error) {
	for _, c := range []struct {
		v   int
		dst *uint32
	}{
		{r.Min.X, &x1}, {r.Min.Y, &y1}, {r.Max.X, &x2}, {r.Max.Y, &y2},
	} {
		*c.dst, err = coord(c.v)
		if err != nil {
			return
		}
	}
	return
}

// SetColorImage sets the framebuffer to render the final image into.  The
// address is virtual and must be 64 byte aligned.
func (dl *DisplayList) SetColorImage(addr uint32, width int, format ImageFormat, bpp BitDepth) {
	phys, err := cpu.Physical(addr)
	if err != nil {
		dl.fail(err)
		return
	}
	if err := cpu.CheckAlign(addr, 64); err != nil {
		dl.fail(err)
		return
	}
	if width < 1 || width > 1<<10 {
		dl.fail(fmt.Errorf("%w: image width %d", ErrFieldOverflow, width))
		return
	}
	dl.append(Command{
		UW: 0x3f<<24 | uint32(format) | uint32(bpp) | uint32(width-1),
		LW: uint32(phys),
	})
	dl.bpp, dl.fbSet = bpp, true
}

// SetFillColor sets the color for subsequent FillRectangle commands.  The
// color is packed for the current framebuffer depth, 32 bpp if no color image
// has been set.
func (dl *DisplayList) SetFillColor(c color.Color) {
	r, g, b, a := c.RGBA()
	var ci uint32
	if dl.fbSet && dl.bpp == BPP16 {
		ci = (r>>11)<<11 | (g>>11)<<6 | (b>>11)<<1 | a>>15
		ci |= ci << 16
	} else {
		ci = (r>>8)<<24 | (g>>8)<<16 | (b>>8)<<8 | a>>8
	}
	dl.append(Command{UW: 0x3700_0000, LW: ci})
}

// FillRectangle draws a rectangle filled with the color set by SetFillColor.
// Both corners are inclusive.  The wire format stores the bottom-right corner
// in the upper word and the top-left corner in the lower word.
func (dl *DisplayList) FillRectangle(r image.Rectangle) {
	x1, y1, x2, y2, err := coords(r)
	if err == nil && (r.Max.X < r.Min.X || r.Max.Y < r.Min.Y) {
		err = fmt.Errorf("%w: empty rectangle %v", ErrFieldOverflow, r)
	}
	if err != nil {
		dl.fail(err)
		return
	}
	dl.append(Command{
		UW: 0x36<<24 | x2<<12 | y2,
		LW: x1<<12 | y1,
	})
}

// SetScissor skips everything outside r when rendering.  Additionally odd or
// even lines can be skipped to render interlaced frames.
func (dl *DisplayList) SetScissor(r image.Rectangle, i InterlaceFrame) {
	x1, y1, x2, y2, err := coords(r)
	if err != nil {
		dl.fail(err)
		return
	}
	dl.append(Command{
		UW: 0x2d<<24 | x1<<12 | y1,
		LW: uint32(i)<<24 | x2<<12 | y2,
	})
}

// SetOtherModes configures the rasterizer pipeline.
func (dl *DisplayList) SetOtherModes(m ModeFlags) {
	cmd := 0x2f00_000f_0000_0000 | uint64(m)
	dl.append(Command{UW: uint32(cmd >> 32), LW: uint32(cmd)})
}

// Sync emits one of the pipeline synchronization commands.
func (dl *DisplayList) Sync(s SyncCommand) {
	dl.append(Command{UW: uint32(s), LW: 0x0})
}
